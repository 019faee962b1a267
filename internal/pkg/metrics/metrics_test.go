package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSnapshot(t *testing.T) {
	var c Counters
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.DatagramsIn.Add(1)
		}()
	}
	wg.Wait()
	c.Players.Store(3)

	snap := c.Snapshot()
	require.Equal(t, int64(8), snap["datagrams_in"])
	require.Equal(t, int64(3), snap["players"])
	require.Equal(t, int64(0), snap["ticks"])
}
