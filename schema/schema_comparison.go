package schema

// DiffSummary has high-level counts for a coverage diff.
type DiffSummary struct {
	File1Covered int `json:"file1_covered" yaml:"file1_covered"` // Covered edges in the first report
	File2Covered int `json:"file2_covered" yaml:"file2_covered"` // Covered edges in the second report
	Shared       int `json:"shared" yaml:"shared"`               // Covered in both
	OnlyInFile1  int `json:"only_in_file1" yaml:"only_in_file1"`
	OnlyInFile2  int `json:"only_in_file2" yaml:"only_in_file2"`
}

// DiffResult holds the asymmetric set differences between two coverage snapshots.
// Both lists are sorted by EdgeKey and are never nil, so the JSON shape stays stable.
type DiffResult struct {
	OnlyInFile1 []EdgeDetail `json:"only_in_file1"`
	OnlyInFile2 []EdgeDetail `json:"only_in_file2"`
	Summary     DiffSummary  `json:"-"`
}
