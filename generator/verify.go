package generator

// Check is the verification outcome of one entity.
type Check struct {
	Sample int
	Entity Entity
	Actual string
	OK     bool
}

// Report aggregates the span checks of a batch.
type Report struct {
	Total  int
	Errors int
	Checks []Check
}

// Accurate reports whether every entity matched.
func (r Report) Accurate() bool {
	return r.Errors == 0
}

// Failures returns the mismatching checks.
func (r Report) Failures() []Check {
	var out []Check
	for _, c := range r.Checks {
		if !c.OK {
			out = append(out, c)
		}
	}
	return out
}

// Verify checks that every entity's span, counted in runes, selects exactly
// its recorded value. Out-of-range spans are reported as mismatches.
func Verify(samples []Sample) Report {
	var rep Report
	for i, s := range samples {
		runes := []rune(s.Text)
		for _, e := range s.Entities {
			actual := sliceRunes(runes, e.Start, e.End)
			ok := actual == e.Value && e.Start >= 0 && e.End <= len(runes) && e.Start <= e.End
			rep.Total++
			if !ok {
				rep.Errors++
			}
			rep.Checks = append(rep.Checks, Check{Sample: i, Entity: e, Actual: actual, OK: ok})
		}
	}
	return rep
}

// SpanText returns the runes [start, end) of text, clamped to its bounds.
func SpanText(text string, start, end int) string {
	return sliceRunes([]rune(text), start, end)
}

func sliceRunes(runes []rune, start, end int) string {
	start = max(start, 0)
	end = min(end, len(runes))
	if start >= end {
		return ""
	}
	return string(runes[start:end])
}
