package concurrent_test

import (
	"testing"

	"lintang/busnavigator/pkg/concurrent"
	"lintang/busnavigator/pkg/datastructure"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPool(t *testing.T) {
	jobs := 25
	wp := concurrent.NewWorkerPool[concurrent.SegmentJobItem, int](4, jobs)
	for i := 0; i < jobs; i++ {
		wp.AddJob(concurrent.SegmentJobItem{
			Index: i,
			From:  datastructure.NewCoordinate(0, 0),
			To:    datastructure.NewCoordinate(0, float64(i)),
		})
	}
	wp.Close()

	wp.Start(func(job concurrent.SegmentJobItem) int {
		return job.Index * 2
	})
	wp.Wait()

	seen := make(map[int]bool)
	for res := range wp.CollectResults() {
		seen[res] = true
	}
	assert.Len(t, seen, jobs)
	for i := 0; i < jobs; i++ {
		assert.True(t, seen[i*2])
	}
}

func TestWorkerPoolAtLeastOneWorker(t *testing.T) {
	wp := concurrent.NewWorkerPool[concurrent.SaveStopCellJobItem, string](0, 1)
	wp.AddJob(concurrent.SaveStopCellJobItem{KeyStr: "cell"})
	wp.Close()
	wp.Start(func(job concurrent.SaveStopCellJobItem) string { return job.KeyStr })
	wp.Wait()

	got := []string{}
	for r := range wp.CollectResults() {
		got = append(got, r)
	}
	assert.Equal(t, []string{"cell"}, got)
}
