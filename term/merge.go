package term

// lineMerger resolves the rune drawn where two wire strokes land on the
// same cell. Crossing strokes become box-drawing intersections; junction
// dots are never drawn over.
type lineMerger struct {
	rules map[mergePair]rune
}

type mergePair struct {
	old rune
	new rune
}

func newLineMerger() *lineMerger {
	m := &lineMerger{rules: make(map[mergePair]rune)}
	add := func(a, b, merged rune) {
		m.rules[mergePair{a, b}] = merged
	}

	// Plain crossing.
	add('─', '│', '┼')

	// A stroke running through a corner opens it into a tee.
	add('╭', '─', '┬')
	add('╮', '─', '┬')
	add('╰', '─', '┴')
	add('╯', '─', '┴')
	add('╭', '│', '├')
	add('╰', '│', '├')
	add('╮', '│', '┤')
	add('╯', '│', '┤')

	// Two corners sharing a cell.
	add('╭', '╮', '┬')
	add('╰', '╯', '┴')
	add('╭', '╰', '├')
	add('╮', '╯', '┤')
	add('╭', '╯', '┼')
	add('╮', '╰', '┼')

	// A tee crossed by the perpendicular stroke.
	add('┬', '│', '┼')
	add('┴', '│', '┼')
	add('├', '─', '┼')
	add('┤', '─', '┼')
	return m
}

func (m *lineMerger) merge(old, new rune) rune {
	if old == ' ' || old == 0 {
		return new
	}
	if old == new {
		return old
	}
	if old == junctionDot {
		return old
	}
	if new == junctionDot {
		return new
	}
	if r, ok := m.rules[mergePair{old, new}]; ok {
		return r
	}
	// Merging is commutative.
	if r, ok := m.rules[mergePair{new, old}]; ok {
		return r
	}
	return old
}
