package matrix

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherInvalidatesOnWrite(t *testing.T) {
	path := writeMatrix(t, "name,O1\nCourseA,H\n")
	acc := NewAccessor(nil)

	first, err := acc.Get(path)
	require.NoError(t, err)

	w, err := acc.Watch(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("name,O1\nCourseA,M\n"), 0o644))

	select {
	case changed := <-w.Events():
		assert.Contains(t, changed, "matrix.csv")
	case <-time.After(5 * time.Second):
		t.Fatal("no watch event received")
	}

	second, err := acc.Get(path)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}

func TestWatcherCloseStopsEvents(t *testing.T) {
	path := writeMatrix(t, "name,O1\nCourseA,H\n")
	acc := NewAccessor(nil)

	w, err := acc.Watch(path)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, open := <-w.Events()
	assert.False(t, open)
}
