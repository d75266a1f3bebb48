package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dualword/PyMOL/internal/parsing"
)

// Type is the value type of a setting.
type Type int

const (
	TypeBool Type = iota
	TypeInt
	TypeFloat
	TypeString
	TypeColor
)

func (t Type) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeColor:
		return "color"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// Setting describes one named session setting.
type Setting struct {
	Name    string
	Type    Type
	Default string
	Doc     string
}

// DefaultSettings is the settings table every session starts from.
var DefaultSettings = []Setting{
	{Name: "auto_zoom", Type: TypeBool, Default: "on", Doc: "Zoom to new objects as they load."},
	{Name: "bg_color", Type: TypeColor, Default: "black", Doc: "Viewport background color."},
	{Name: "cartoon_transparency", Type: TypeFloat, Default: "0", Doc: "Cartoon transparency from 0 to 1."},
	{Name: "fetch_path", Type: TypeString, Default: ".", Doc: "Directory fetched files are written to."},
	{Name: "fetch_type_default", Type: TypeString, Default: "cif", Doc: "File format used by fetch."},
	{Name: "ignore_case", Type: TypeBool, Default: "on", Doc: "Ignore case in identifiers."},
	{Name: "label_font_id", Type: TypeInt, Default: "5", Doc: "Font used for labels."},
	{Name: "orthoscopic", Type: TypeBool, Default: "off", Doc: "Use an orthographic projection."},
	{Name: "raise_exceptions", Type: TypeBool, Default: "off", Doc: "Stop scripts at the first failing command."},
	{Name: "ray_trace_mode", Type: TypeInt, Default: "0", Doc: "Ray tracing outline mode."},
	{Name: "sphere_scale", Type: TypeFloat, Default: "1", Doc: "Sphere radius scale."},
	{Name: "stick_radius", Type: TypeFloat, Default: "0.25", Doc: "Stick radius in angstroms."},
	{Name: "surface_quality", Type: TypeInt, Default: "0", Doc: "Surface tessellation quality."},
}

// normalize checks value against the setting type and returns its
// canonical form.
func (s *Session) normalize(def Setting, value string) (string, error) {
	value = parsing.StripQuotes(strings.TrimSpace(value))

	switch def.Type {
	case TypeBool:
		b, err := ParseBool(value)
		if err != nil {
			return "", err
		}
		return FormatBool(b), nil

	case TypeInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return "", fmt.Errorf("%s expects an integer, got '%s'", def.Name, value)
		}
		return strconv.Itoa(n), nil

	case TypeFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return "", fmt.Errorf("%s expects a number, got '%s'", def.Name, value)
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil

	case TypeColor:
		name, _, err := s.palette.Get(value)
		if err != nil {
			return "", err
		}
		return name, nil

	default:
		return value, nil
	}
}
