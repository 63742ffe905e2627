// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// CountStatus indicates whether a streamline count could be obtained for
// an artifact.
type CountStatus string

const (
	CountOK     CountStatus = "counted"
	CountAbsent CountStatus = "absent"
)

// TractSpec names one input tract file and the ROI masks used to filter it.
// ROI order is preserved on the tckedit command line.
type TractSpec struct {
	// File is the tract file name relative to the subject directory
	// (e.g. "CST_L.tck").
	File string `json:"file" yaml:"file"`

	// ROIs lists the binary mask file names, relative to the subject
	// directory, applied as inclusion criteria.
	ROIs []string `json:"rois" yaml:"rois"`
}

// FiberCount records how many streamlines exist in one artifact at one
// pipeline stage. A nil Count means the artifact could not be read; callers
// must treat that as "unknown", never as zero.
type FiberCount struct {
	// Label is the artifact file name the count belongs to.
	Label string `json:"label" yaml:"label"`

	// Count is the streamline count, or nil when the artifact was
	// missing or unreadable.
	Count *int64 `json:"count" yaml:"count"`

	// Status is CountOK when Count is set, CountAbsent otherwise.
	Status CountStatus `json:"status" yaml:"status"`

	// Reason explains an absent count (read error, upstream tool failure).
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

// Counted builds a FiberCount with a known value.
func Counted(label string, n int64) FiberCount {
	return FiberCount{Label: label, Count: &n, Status: CountOK}
}

// Absent builds a FiberCount for an artifact whose count is unknown.
func Absent(label, reason string) FiberCount {
	return FiberCount{Label: label, Status: CountAbsent, Reason: reason}
}

// Known reports whether the count was obtained.
func (c FiberCount) Known() bool {
	return c.Count != nil
}
