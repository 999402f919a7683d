package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ChicagoDave/tubenet/pkg/geo"
	"github.com/ChicagoDave/tubenet/pkg/network"
)

// ErrMalformedInput is returned when a turn record is incomplete or does not
// parse. The game cannot continue after it.
var ErrMalformedInput = errors.New("malformed input")

// Route is a link the judge reports as built. Teleporters report capacity 0.
type Route struct {
	A        int `json:"a"`
	B        int `json:"b"`
	Capacity int `json:"capacity"`
}

// PodInfo is a pod the judge reports. The planner does not use it beyond
// logging.
type PodInfo struct {
	ID    int   `json:"id"`
	Stops []int `json:"stops"`
}

// NewBuilding is a building appearing for the first time. Kind 0 is a pad
// with its arriving categories; any other kind is a hangout of that
// category.
type NewBuilding struct {
	Kind       int   `json:"kind"`
	ID         int   `json:"id"`
	X          int   `json:"x"`
	Y          int   `json:"y"`
	Categories []int `json:"categories,omitempty"`
}

// Building converts the record into a network building.
func (nb NewBuilding) Building() network.Building {
	pos := geo.Pt(float64(nb.X), float64(nb.Y))
	if nb.Kind == 0 {
		return network.NewPad(nb.ID, pos, nb.Categories...)
	}
	return network.NewHangout(nb.ID, pos, nb.Kind)
}

// Turn is one parsed input snapshot.
type Turn struct {
	Resources int           `json:"resources"`
	Routes    []Route       `json:"routes"`
	Pods      []PodInfo     `json:"pods"`
	Buildings []NewBuilding `json:"buildings"`
}

// Reader reads turns from the judge one line at a time.
type Reader struct {
	sc   *bufio.Scanner
	line int
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return &Reader{sc: sc}
}

// ReadTurn parses the next turn. It returns io.EOF when the input ends
// cleanly before a new turn starts.
func (r *Reader) ReadTurn() (*Turn, error) {
	first, err := r.next()
	if err != nil {
		return nil, err
	}
	t := &Turn{}
	if t.Resources, err = r.single(first); err != nil {
		return nil, err
	}

	n, err := r.count()
	if err != nil {
		return nil, err
	}
	for range n {
		f, err := r.ints(3)
		if err != nil {
			return nil, err
		}
		t.Routes = append(t.Routes, Route{A: f[0], B: f[1], Capacity: f[2]})
	}

	if n, err = r.count(); err != nil {
		return nil, err
	}
	for range n {
		f, err := r.ints(-1)
		if err != nil {
			return nil, err
		}
		if len(f) < 2 || len(f) != 2+f[1] {
			return nil, r.malformed("pod record %v", f)
		}
		t.Pods = append(t.Pods, PodInfo{ID: f[0], Stops: f[2:]})
	}

	if n, err = r.count(); err != nil {
		return nil, err
	}
	for range n {
		f, err := r.ints(-1)
		if err != nil {
			return nil, err
		}
		nb, err := r.building(f)
		if err != nil {
			return nil, err
		}
		t.Buildings = append(t.Buildings, nb)
	}
	return t, nil
}

func (r *Reader) building(f []int) (NewBuilding, error) {
	if len(f) < 4 {
		return NewBuilding{}, r.malformed("building record %v", f)
	}
	nb := NewBuilding{Kind: f[0], ID: f[1], X: f[2], Y: f[3]}
	if nb.Kind != 0 {
		if len(f) != 4 {
			return NewBuilding{}, r.malformed("hangout record %v", f)
		}
		return nb, nil
	}
	if len(f) < 5 || f[4] < 0 || len(f) != 5+f[4] {
		return NewBuilding{}, r.malformed("pad record %v", f)
	}
	nb.Categories = f[5:]
	return nb, nil
}

func (r *Reader) next() (string, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", fmt.Errorf("reading turn: %w", err)
		}
		return "", io.EOF
	}
	r.line++
	return r.sc.Text(), nil
}

// ints reads the next line as integers. want < 0 accepts any count.
func (r *Reader) ints(want int) ([]int, error) {
	s, err := r.next()
	if errors.Is(err, io.EOF) {
		return nil, r.malformed("unexpected end of input")
	}
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(s)
	if want >= 0 && len(fields) != want {
		return nil, r.malformed("expected %d fields, got %d", want, len(fields))
	}
	out := make([]int, len(fields))
	for i, f := range fields {
		if out[i], err = strconv.Atoi(f); err != nil {
			return nil, r.malformed("field %q is not an integer", f)
		}
	}
	return out, nil
}

func (r *Reader) count() (int, error) {
	f, err := r.ints(1)
	if err != nil {
		return 0, err
	}
	if f[0] < 0 {
		return 0, r.malformed("negative count %d", f[0])
	}
	return f[0], nil
}

func (r *Reader) single(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, r.malformed("resources %q is not an integer", s)
	}
	return v, nil
}

func (r *Reader) malformed(format string, args ...any) error {
	return fmt.Errorf("line %d: %s: %w", r.line, fmt.Sprintf(format, args...), ErrMalformedInput)
}

// FormatTurn renders t in the judge's input format.
func FormatTurn(t *Turn) string {
	var b strings.Builder
	fmt.Fprintln(&b, t.Resources)
	fmt.Fprintln(&b, len(t.Routes))
	for _, r := range t.Routes {
		fmt.Fprintf(&b, "%d %d %d\n", r.A, r.B, r.Capacity)
	}
	fmt.Fprintln(&b, len(t.Pods))
	for _, p := range t.Pods {
		fmt.Fprintf(&b, "%d %d%s\n", p.ID, len(p.Stops), joinInts(p.Stops))
	}
	fmt.Fprintln(&b, len(t.Buildings))
	for _, nb := range t.Buildings {
		fmt.Fprintf(&b, "%d %d %d %d", nb.Kind, nb.ID, nb.X, nb.Y)
		if nb.Kind == 0 {
			fmt.Fprintf(&b, " %d%s", len(nb.Categories), joinInts(nb.Categories))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func joinInts(vs []int) string {
	var b strings.Builder
	for _, v := range vs {
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}
