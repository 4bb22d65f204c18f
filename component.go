package gpeg

import (
	"fmt"
	"strings"
)

// Component identifies one color plane of a frame.
type Component int

const (
	Luma Component = iota
	BlueChroma
	RedChroma
)

// Components lists every component of a frame in storage order.
var Components = []Component{Luma, BlueChroma, RedChroma}

var componentExts = [...]string{".Y", ".Cb", ".Cr"}

// Ext returns the file extension used for the component's plane.
func (c Component) Ext() string {
	return componentExts[c]
}

// Shift returns the subsampling shift applied to the frame dimensions.
func (c Component) Shift() uint {
	if c == Luma {
		return 0
	}
	return 1
}

func (c Component) String() string {
	return strings.TrimPrefix(c.Ext(), ".")
}

// ParseComponent parses a component name, as returned by String.
func ParseComponent(s string) (Component, error) {
	for _, c := range Components {
		if strings.EqualFold(s, c.String()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown component %q", s)
}
