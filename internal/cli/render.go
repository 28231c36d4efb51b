package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"slotgrid"
)

// RenderJSON writes the slots as an indented JSON array of transport
// records.
func RenderJSON(w io.Writer, slots []slotgrid.Slot) error {
	records := make([]slotgrid.Record, 0, len(slots))
	for _, s := range slots {
		records = append(records, slotgrid.ToRecord(s))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// RenderTable writes a human-readable listing, one slot per line.
func RenderTable(w io.Writer, slots []slotgrid.Slot) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSTART\tEND\tMINUTES\tLABEL")
	for _, s := range slots {
		r := slotgrid.ToRecord(s)
		index, minutes, label := "-", "-", ""
		if s.Metadata != nil {
			index = fmt.Sprintf("%d", s.Metadata.Index)
			minutes = fmt.Sprintf("%g", s.Metadata.DurationMinutes)
			if s.Metadata.Label != nil {
				label = *s.Metadata.Label
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", index, r.Start, r.End, minutes, label)
	}
	return tw.Flush()
}
