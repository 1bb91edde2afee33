package hourly

const (
	ShiftFirst  = "1st Shift-(6am-2pm)"
	ShiftSecond = "2nd Shift-(2pm-10pm)"
)

// Window is a half-open hour range [Start, End).
type Window struct {
	Start int
	End   int
}

// Hours returns the number of hours covered by the window.
func (w Window) Hours() int {
	if w.End <= w.Start {
		return 0
	}
	return w.End - w.Start
}

type shiftEntry struct {
	name   string
	window Window
}

// New shifts are added here and nowhere else.
var shiftTable = []shiftEntry{
	{name: ShiftFirst, window: Window{Start: 6, End: 14}},
	{name: ShiftSecond, window: Window{Start: 14, End: 22}},
}

var shiftWindows = func() map[string]Window {
	m := make(map[string]Window, len(shiftTable))
	for _, entry := range shiftTable {
		m[entry.name] = entry.window
	}
	return m
}()

// ShiftWindow looks up the hour window for a named shift.
func ShiftWindow(name string) (Window, bool) {
	w, ok := shiftWindows[name]
	return w, ok
}

// Shifts lists the recognised shift names in table order.
func Shifts() []string {
	names := make([]string, 0, len(shiftTable))
	for _, entry := range shiftTable {
		names = append(names, entry.name)
	}
	return names
}
