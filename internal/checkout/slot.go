package checkout

import "time"

type Day struct {
	Label       string `json:"label"`
	Date        string `json:"date"`
	Month       string `json:"month,omitempty"`
	FullDate    string `json:"fullDate,omitempty"`
	Recommended bool   `json:"recommended"`
}

type Slot struct {
	Day  Day    `json:"day"`
	Time string `json:"time"`
}

// Format renders the slot the way it is stored on the order.
func (s Slot) Format() string {
	return s.Day.Label + " " + s.Day.Date + " - " + s.Time
}

func (s Slot) Empty() bool {
	return s.Day.Label == "" && s.Day.Date == "" && s.Time == ""
}

type SlotOptions struct {
	Days  []Day    `json:"days"`
	Times []string `json:"times"`
}

const (
	slotCount     = 3
	firstSlotHour = 18
	lastSlotHour  = 22
	slotStep      = 30 * time.Minute
)

// FixedSlots is the static schedule offered when generated slots are disabled.
func FixedSlots() SlotOptions {
	return SlotOptions{
		Days: []Day{
			{Label: "Fri", Date: "18", Recommended: true},
			{Label: "Sat", Date: "19"},
			{Label: "Sun", Date: "20"},
		},
		Times: []string{"06:30 PM", "07:00 PM", "07:30 PM"},
	}
}

// GenerateSlots offers the three days starting tomorrow and the next three half-hour
// start times after now inside the 18:00-22:00 window.
func GenerateSlots(now time.Time) SlotOptions {
	var opts SlotOptions
	tomorrow := startOfDay(now).AddDate(0, 0, 1)
	for i := 0; i < slotCount; i++ {
		d := tomorrow.AddDate(0, 0, i)
		opts.Days = append(opts.Days, Day{
			Label:       d.Format("Mon"),
			Date:        d.Format("2"),
			Month:       d.Format("Jan"),
			FullDate:    d.Format("2006-01-02"),
			Recommended: i == 0,
		})
	}

	t := startOfDay(now).Add(firstSlotHour * time.Hour)
	for len(opts.Times) < slotCount {
		if t.Hour() >= lastSlotHour {
			t = startOfDay(t).AddDate(0, 0, 1).Add(firstSlotHour * time.Hour)
		}
		if t.After(now) {
			opts.Times = append(opts.Times, t.Format("3:04 PM"))
		}
		t = t.Add(slotStep)
	}
	return opts
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
