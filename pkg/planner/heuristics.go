package planner

import (
	"errors"
	"math"

	"github.com/ChicagoDave/tubenet/pkg/cost"
	"github.com/ChicagoDave/tubenet/pkg/network"
	"github.com/ChicagoDave/tubenet/pkg/schedule"
)

// newTube is a tube built this turn that still needs a pod. From is the end
// the pod starts at.
type newTube struct {
	from, to int
}

// plan runs the greedy pass after a drain that did not stall.
func (p *Planner) plan() {
	p.serveIdleTubes()

	var built []newTube
	built, stopped := p.connectPads(built)
	if !stopped {
		built = p.connectHangouts(built)
	}
	for _, t := range built {
		if err := p.run(schedule.Pod(t.from, t.to)); err != nil {
			p.logger.Debug("pod postponed", "turn", p.turn, "from", t.from, "to", t.to, "err", err)
		}
	}

	p.upgradeBusyTubes()
}

// serveIdleTubes gives every tube without a pod a shuttle from its pad end.
func (p *Planner) serveIdleTubes() {
	for _, id := range p.world.UnservedTubes() {
		e, _ := p.world.EdgeByID(id)
		from, to := p.padFirst(e.A, e.B)
		if err := p.run(schedule.Pod(from, to)); err != nil {
			p.logger.Debug("idle tube stays idle", "turn", p.turn, "a", e.A, "b", e.B, "err", err)
		}
	}
}

// connectPads links each isolated pad to whichever is closer: the nearest
// building already in a city or the nearest isolated hangout. It stops, and
// reports true, once a tube and its pod no longer fit in the budget; that
// pair is deferred as a whole. A fallback teleporter is deferred the same way
// when it would eat the pods owed to tubes built earlier in the pass.
func (p *Planner) connectPads(built []newTube) ([]newTube, bool) {
	for _, id := range p.world.IsolatedPads() {
		pad, _ := p.world.Building(id)
		if pad.City != 0 {
			continue // joined earlier this pass
		}
		target, ok := p.nearest(pad, func(b *network.Building) bool {
			return b.City != 0 || b.Kind == network.Hangout
		})
		if !ok {
			continue
		}

		err := p.world.CheckTube(pad.ID, target)
		switch {
		case err == nil:
			price := p.prices.Tube(pad.Pos, p.pos(target))
			if price+p.prices.Pod*(len(built)+1) > p.ledger.Resources() {
				p.queue.Enqueue(schedule.Tube(pad.ID, target))
				p.queue.Enqueue(schedule.Pod(pad.ID, target))
				p.logger.Debug("deferring tube and pod", "turn", p.turn, "pad", pad.ID, "target", target)
				return built, true
			}
			if err := p.run(schedule.Tube(pad.ID, target)); err != nil {
				p.logger.Warn("tube failed", "turn", p.turn, "pad", pad.ID, "target", target, "err", err)
				continue
			}
			built = append(built, newTube{from: pad.ID, to: target})
		case errors.Is(err, network.ErrGeometricallyInvalid) && p.opts.TeleporterFallback:
			tp := schedule.Teleport(pad.ID, target)
			price, err := p.Attempt(tp)
			if err == nil && price+p.prices.Pod*len(built) > p.ledger.Resources() {
				err = cost.ErrInsufficientFunds // pods for this turn's tubes come first
			}
			if errors.Is(err, cost.ErrInsufficientFunds) {
				p.queue.Enqueue(tp)
				p.logger.Debug("deferring teleporter", "turn", p.turn, "pad", pad.ID, "target", target)
				return built, true
			}
			if err != nil {
				p.logger.Debug("teleporter rejected", "turn", p.turn, "pad", pad.ID, "target", target, "err", err)
				continue
			}
			if err := p.Commit(tp, price); err != nil {
				p.logger.Warn("teleporter failed", "turn", p.turn, "pad", pad.ID, "target", target, "err", err)
			}
		default:
			p.logger.Debug("pad skipped", "turn", p.turn, "pad", pad.ID, "target", target, "err", err)
		}
	}
	return built, false
}

// connectHangouts links each isolated hangout to the nearest city building,
// but only while the balance left afterwards still pays a pod for every tube
// built this turn. A hangout that does not fit is skipped, not deferred.
func (p *Planner) connectHangouts(built []newTube) []newTube {
	for _, id := range p.world.IsolatedHangouts() {
		h, _ := p.world.Building(id)
		target, ok := p.nearest(h, func(b *network.Building) bool { return b.City != 0 })
		if !ok {
			return built
		}
		reserve := p.prices.Pod * (len(built) + 1)

		err := p.world.CheckTube(target, h.ID)
		switch {
		case err == nil:
			if p.prices.Tube(h.Pos, p.pos(target))+reserve > p.ledger.Resources() {
				continue
			}
			if err := p.run(schedule.Tube(target, h.ID)); err != nil {
				p.logger.Warn("tube failed", "turn", p.turn, "hangout", h.ID, "target", target, "err", err)
				continue
			}
			from, to := p.padFirst(target, h.ID)
			built = append(built, newTube{from: from, to: to})
		case errors.Is(err, network.ErrGeometricallyInvalid) && p.opts.TeleporterFallback:
			if p.prices.Teleporter+p.prices.Pod*len(built) > p.ledger.Resources() {
				continue
			}
			if err := p.run(schedule.Teleport(target, h.ID)); err != nil {
				p.logger.Debug("teleporter rejected", "turn", p.turn, "hangout", h.ID, "target", target, "err", err)
			}
		default:
			p.logger.Debug("hangout skipped", "turn", p.turn, "hangout", h.ID, "target", target, "err", err)
		}
	}
	return built
}

// upgradeBusyTubes adds a slot and a second pod to full tubes while the
// balance stays above the configured surplus.
func (p *Planner) upgradeBusyTubes() {
	if p.opts.UpgradeSurplus <= 0 {
		return
	}
	for _, e := range p.world.Edges() {
		if e.Kind != network.Tube || !e.Awake || e.Pods < e.Capacity {
			continue
		}
		price := p.prices.Upgrade(p.pos(e.A), p.pos(e.B), e.Capacity)
		if p.ledger.Resources()-price-p.prices.Pod < p.opts.UpgradeSurplus {
			return
		}
		if err := p.run(schedule.Upgrade(e.A, e.B)); err != nil {
			p.logger.Debug("upgrade skipped", "turn", p.turn, "a", e.A, "b", e.B, "err", err)
			continue
		}
		from, to := p.padFirst(e.A, e.B)
		if err := p.run(schedule.Pod(from, to)); err != nil {
			p.logger.Debug("extra pod postponed", "turn", p.turn, "a", e.A, "b", e.B, "err", err)
		}
	}
}

// nearest returns the closest building to from accepted by keep. Ties go to
// the lower id.
func (p *Planner) nearest(from *network.Building, keep func(*network.Building) bool) (int, bool) {
	best, bestDist, found := 0, math.Inf(1), false
	for _, b := range p.world.Buildings() {
		if b.ID == from.ID || !keep(b) {
			continue
		}
		if d := from.Pos.Distance(b.Pos); d < bestDist {
			best, bestDist, found = b.ID, d, true
		}
	}
	return best, found
}

// padFirst orders a tube's endpoints so a pod starts at its pad, if any.
func (p *Planner) padFirst(a, b int) (int, int) {
	if ba, ok := p.world.Building(a); ok && ba.Kind == network.Pad {
		return a, b
	}
	if bb, ok := p.world.Building(b); ok && bb.Kind == network.Pad {
		return b, a
	}
	return a, b
}
