package protocol

import (
	"strconv"
	"strings"
)

// Verb is a command keyword understood by the judge.
type Verb string

const (
	VerbTube     Verb = "TUBE"
	VerbUpgrade  Verb = "UPGRADE"
	VerbTeleport Verb = "TELEPORT"
	VerbPod      Verb = "POD"
	VerbDestroy  Verb = "DESTROY"
	VerbWait     Verb = "WAIT"
)

// Command is one instruction of a turn's output line.
type Command struct {
	Verb Verb  `json:"verb"`
	Args []int `json:"args,omitempty"`
}

func Tube(a, b int) Command               { return Command{VerbTube, []int{a, b}} }
func Upgrade(a, b int) Command            { return Command{VerbUpgrade, []int{a, b}} }
func Teleport(entrance, exit int) Command { return Command{VerbTeleport, []int{entrance, exit}} }
func Destroy(pod int) Command             { return Command{VerbDestroy, []int{pod}} }
func Wait() Command                       { return Command{Verb: VerbWait} }

// Pod creates pod id on the given cyclic route.
func Pod(id int, route []int) Command {
	return Command{VerbPod, append([]int{id}, route...)}
}

func (c Command) String() string {
	var b strings.Builder
	b.WriteString(string(c.Verb))
	for _, a := range c.Args {
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(a))
	}
	return b.String()
}

// Format joins a turn's commands with ";" and closes the round with WAIT.
// An empty turn is just "WAIT".
func Format(cmds []Command) string {
	parts := make([]string, 0, len(cmds)+1)
	for _, c := range cmds {
		if c.Verb == VerbWait {
			continue
		}
		parts = append(parts, c.String())
	}
	parts = append(parts, string(VerbWait))
	return strings.Join(parts, ";")
}
