package schedule

import "fmt"

// Kind tags the intent an Action carries.
type Kind int

const (
	BuildTube Kind = iota
	BuildTeleporter
	UpgradeTube
	BuildPod
	DestroyPod
)

var kindNames = map[Kind]string{
	BuildTube:       "tube",
	BuildTeleporter: "teleport",
	UpgradeTube:     "upgrade",
	BuildPod:        "pod",
	DestroyPod:      "destroy",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Action is a deferred intent. It holds only the data needed to retry it,
// and is comparable, so two equal values are the same action.
//
// A and B are building ids: tube and upgrade endpoints, teleporter entrance
// and exit, or for BuildPod the two stops of the [A, B, A] route. Pod is
// only meaningful for DestroyPod.
type Action struct {
	Kind Kind `json:"kind"`
	A    int  `json:"a"`
	B    int  `json:"b"`
	Pod  int  `json:"pod,omitempty"`
}

func Tube(a, b int) Action        { return Action{Kind: BuildTube, A: a, B: b} }
func Teleport(in, out int) Action { return Action{Kind: BuildTeleporter, A: in, B: out} }
func Upgrade(a, b int) Action     { return Action{Kind: UpgradeTube, A: a, B: b} }
func Pod(a, b int) Action         { return Action{Kind: BuildPod, A: a, B: b} }
func Destroy(pod int) Action      { return Action{Kind: DestroyPod, Pod: pod} }

func (a Action) String() string {
	switch a.Kind {
	case DestroyPod:
		return fmt.Sprintf("%s %d", a.Kind, a.Pod)
	case BuildPod:
		return fmt.Sprintf("%s %d-%d-%d", a.Kind, a.A, a.B, a.A)
	default:
		return fmt.Sprintf("%s %d-%d", a.Kind, a.A, a.B)
	}
}
