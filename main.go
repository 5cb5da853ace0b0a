package main

import (
	"flag"
	"fmt"
	"os"

	"breadboard/geometry"
	"breadboard/schematic"
	"breadboard/term"
)

func main() {
	dump := flag.Bool("dump", false, "Render one frame to stdout and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "An interactive schematic editor for the terminal.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  tab     select the next component\n")
		fmt.Fprintf(os.Stderr, "  arrows  slide the selected component along its wire\n")
		fmt.Fprintf(os.Stderr, "  enter   drop the component\n")
		fmt.Fprintf(os.Stderr, "  r       rotate the selected component\n")
		fmt.Fprintf(os.Stderr, "  q       quit\n")
	}
	flag.Parse()

	doc := demoSchematic()

	if *dump {
		fmt.Println(term.Dump(doc, 80, 24))
		return
	}
	if err := term.NewApp(doc).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "breadboard: %v\n", err)
		os.Exit(1)
	}
}

// demoSchematic wires a battery, a resistor and a capacitor into a loop,
// with an inductor hanging off a junction tap on the bottom edge. The loop
// is one closed polyline whose seam sits at the tap, so the seam point
// carries a junction dot rather than a fake corner.
func demoSchematic() *schematic.Schematic {
	s := schematic.New()
	s.AddWire(&schematic.Wire{
		Points: []geometry.Point{
			geometry.Pt(140, 120),
			geometry.Pt(40, 120),
			geometry.Pt(40, 40),
			geometry.Pt(240, 40),
			geometry.Pt(240, 120),
			geometry.Pt(140, 120),
		},
		Color: "red",
	})
	s.AddWire(&schematic.Wire{
		Points: []geometry.Point{geometry.Pt(140, 120), geometry.Pt(140, 180)},
		Color:  "blue",
	})
	s.AddComponent(&schematic.Component{ID: "b1", Type: schematic.Battery, X: 40, Y: 80, Rot: 90, Label: "B1", Value: "9V"})
	s.AddComponent(&schematic.Component{ID: "r1", Type: schematic.Resistor, X: 140, Y: 40, Label: "R1", Value: "1k"})
	s.AddComponent(&schematic.Component{ID: "c1", Type: schematic.Capacitor, X: 240, Y: 80, Rot: 90, Label: "C1", Value: "100n"})
	s.AddComponent(&schematic.Component{ID: "l1", Type: schematic.Inductor, X: 140, Y: 150, Rot: 90, Label: "L1", Value: "10m"})
	return s
}
