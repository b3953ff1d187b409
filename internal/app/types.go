package app

import "yashubustudio/idgen/generator"

// PreviewRow is one generated sample shown in the result table.
type PreviewRow struct {
	Index  int
	Sample generator.Sample
	Format generator.Format
	// Mismatches counts entities whose span does not select their value.
	Mismatches int
}

type tableColumn struct {
	Title  string
	Width  float32
	Render func(PreviewRow) string
}
