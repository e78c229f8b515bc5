package concurrent

import "lintang/busnavigator/pkg/datastructure"

type StopCell struct {
	StopID string
	Lat    float64
	Lon    float64
}

// SaveStopCellJobItem semua stop di satu h3 cell.
type SaveStopCellJobItem struct {
	KeyStr string
	ValArr []StopCell
}

// SegmentJobItem satu segment itinerary yang dirouting di road graph.
type SegmentJobItem struct {
	Index int
	From  datastructure.Coordinate
	To    datastructure.Coordinate
}

type JobI interface {
	SaveStopCellJobItem | SegmentJobItem
}

type JobFunc[T JobI, G any] func(job T) G
