package planner

import (
	"fmt"

	"github.com/ChicagoDave/tubenet/pkg/geo"
	"github.com/ChicagoDave/tubenet/pkg/network"
	"github.com/ChicagoDave/tubenet/pkg/protocol"
	"github.com/ChicagoDave/tubenet/pkg/schedule"
)

// Attempt checks whether a can run now and returns its price. Validity is
// checked before funds so that an action which can never succeed is not
// deferred forever. It changes nothing.
func (p *Planner) Attempt(a schedule.Action) (int, error) {
	w := p.world
	var price int
	switch a.Kind {
	case schedule.BuildTube:
		if err := w.CheckConnect(a.A, a.B); err != nil {
			return 0, err
		}
		if err := w.CheckTube(a.A, a.B); err != nil {
			return 0, err
		}
		price = p.prices.Tube(p.pos(a.A), p.pos(a.B))
	case schedule.BuildTeleporter:
		if err := w.CheckConnect(a.A, a.B); err != nil {
			return 0, err
		}
		if err := w.CheckTeleporter(a.A, a.B); err != nil {
			return 0, err
		}
		price = p.prices.Teleporter
	case schedule.UpgradeTube:
		if err := w.CheckUpgrade(a.A, a.B); err != nil {
			return 0, err
		}
		e, _ := w.Edge(a.A, a.B)
		price = p.prices.Upgrade(p.pos(a.A), p.pos(a.B), e.Capacity)
	case schedule.BuildPod:
		if err := w.CheckPod(podRoute(a)); err != nil {
			return 0, err
		}
		price = p.prices.Pod
	case schedule.DestroyPod:
		if _, ok := w.Pod(a.Pod); !ok {
			return 0, fmt.Errorf("pod %d: %w", a.Pod, network.ErrInvalidReference)
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("action %v: %w", a, network.ErrInvalidReference)
	}
	if err := p.ledger.Check(price); err != nil {
		return 0, fmt.Errorf("%v: %w", a, err)
	}
	return price, nil
}

// Commit applies an action whose attempt succeeded, charges its price and
// queues its command for this turn's output.
func (p *Planner) Commit(a schedule.Action, price int) error {
	if err := p.ledger.Charge(price); err != nil {
		return fmt.Errorf("%v: %w", a, err)
	}
	cmd, err := p.apply(a)
	if err != nil {
		p.ledger.Credit(price)
		return fmt.Errorf("%v: %w", a, err)
	}
	p.out = append(p.out, cmd)
	return nil
}

func (p *Planner) apply(a schedule.Action) (protocol.Command, error) {
	w := p.world
	switch a.Kind {
	case schedule.BuildTube:
		if _, err := w.Connect(a.A, a.B, network.Tube); err != nil {
			return protocol.Command{}, err
		}
		return protocol.Tube(a.A, a.B), nil
	case schedule.BuildTeleporter:
		if _, err := w.Connect(a.A, a.B, network.Teleporter); err != nil {
			return protocol.Command{}, err
		}
		return protocol.Teleport(a.A, a.B), nil
	case schedule.UpgradeTube:
		if _, err := w.UpgradeTube(a.A, a.B); err != nil {
			return protocol.Command{}, err
		}
		return protocol.Upgrade(a.A, a.B), nil
	case schedule.BuildPod:
		pod, err := w.AddPod(podRoute(a))
		if err != nil {
			return protocol.Command{}, err
		}
		return protocol.Pod(pod.ID, pod.Route), nil
	case schedule.DestroyPod:
		if err := w.RemovePod(a.Pod); err != nil {
			return protocol.Command{}, err
		}
		p.ledger.Credit(p.prices.PodRefund)
		return protocol.Destroy(a.Pod), nil
	}
	return protocol.Command{}, fmt.Errorf("action %v: %w", a, network.ErrInvalidReference)
}

// run attempts and commits a in one step.
func (p *Planner) run(a schedule.Action) error {
	price, err := p.Attempt(a)
	if err != nil {
		return err
	}
	return p.Commit(a, price)
}

func podRoute(a schedule.Action) []int {
	return []int{a.A, a.B, a.A}
}

func (p *Planner) pos(id int) geo.Point {
	if b, ok := p.world.Building(id); ok {
		return b.Pos
	}
	return geo.Origin
}
