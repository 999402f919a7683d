// Package planner runs the per-turn heuristic. A Planner owns the world,
// the ledger and the action queue for the whole game; nothing else mutates
// them.
package planner

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ChicagoDave/tubenet/pkg/config"
	"github.com/ChicagoDave/tubenet/pkg/cost"
	"github.com/ChicagoDave/tubenet/pkg/network"
	"github.com/ChicagoDave/tubenet/pkg/protocol"
	"github.com/ChicagoDave/tubenet/pkg/schedule"
)

// Options tunes the heuristic.
type Options struct {
	TeleporterFallback bool
	// UpgradeSurplus enables tube upgrades: a busy tube is upgraded and
	// given a second pod only while the balance stays above this amount.
	// Zero disables upgrades.
	UpgradeSurplus int
}

// Planner is the simulation context for one game.
type Planner struct {
	world  *network.World
	ledger *cost.Ledger
	queue  *schedule.Queue
	prices cost.Prices
	opts   Options
	logger *slog.Logger

	turn int
	out  []protocol.Command
}

// New builds a planner from cfg. A nil logger discards log output.
func New(cfg *config.Config, logger *slog.Logger) (*Planner, error) {
	netOpts, err := cfg.NetworkOptions()
	if err != nil {
		return nil, fmt.Errorf("creating planner: %w", err)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Planner{
		world:  network.New(netOpts),
		ledger: cost.NewLedger(0),
		queue:  schedule.NewQueue(),
		prices: cfg.Prices,
		opts: Options{
			TeleporterFallback: cfg.Planner.TeleporterFallback,
			UpgradeSurplus:     cfg.Planner.UpgradeSurplus,
		},
		logger: logger,
	}, nil
}

// World returns the planner's world. Callers must not mutate it.
func (p *Planner) World() *network.World { return p.world }

// Queue returns the deferred actions in order.
func (p *Planner) Queue() []schedule.Action { return p.queue.Items() }

// Resources returns the current balance.
func (p *Planner) Resources() int { return p.ledger.Resources() }

// Turn returns the number of turns played.
func (p *Planner) Turn() int { return p.turn }

// Schedule queues an action to run at the start of the next turn. It
// reports false if the action is already queued. The heuristics never retire
// pods, so this is the only way a DESTROY is issued.
func (p *Planner) Schedule(a schedule.Action) bool {
	return p.queue.Enqueue(a)
}

// Discarded is a queued action dropped during the drain.
type Discarded struct {
	Action schedule.Action `json:"action"`
	Code   int             `json:"code"`
	Error  string          `json:"error"`
}

// TurnResult is everything a turn produced.
type TurnResult struct {
	Turn            int                `json:"turn"`
	Commands        []protocol.Command `json:"commands"`
	Line            string             `json:"line"`
	ResourcesBefore int                `json:"resources_before"`
	ResourcesAfter  int                `json:"resources_after"`
	Stalled         bool               `json:"stalled,omitempty"`
	Discarded       []Discarded        `json:"discarded,omitempty"`
	Deferred        []schedule.Action  `json:"deferred,omitempty"`
	Code            int                `json:"code"`
	Elapsed         time.Duration      `json:"elapsed"`
}

// PlayTurn syncs the snapshot, drains deferred actions, plans new ones and
// returns the output line. Per-action failures are logged and never abort
// the turn.
func (p *Planner) PlayTurn(t *protocol.Turn) *TurnResult {
	start := time.Now()
	p.turn++
	p.out = p.out[:0]
	p.sync(t)

	res := &TurnResult{Turn: p.turn, ResourcesBefore: p.ledger.Resources()}

	drain := p.queue.Drain(p)
	for _, d := range drain.Discarded {
		p.logger.Warn("dropped deferred action", "turn", p.turn, "action", d.Action.String(), "err", d.Err)
		res.Discarded = append(res.Discarded, Discarded{Action: d.Action, Code: Code(d.Err), Error: d.Err.Error()})
	}
	res.Stalled = drain.Stalled

	switch {
	case drain.Stalled:
		p.logger.Debug("funds still short, skipping planning", "turn", p.turn, "deferred", p.queue.Len())
	case p.nothingToDo():
		p.logger.Info("nothing to do", "turn", p.turn)
		res.Code = CodeNothingToDo
	default:
		p.plan()
	}

	res.Commands = append([]protocol.Command(nil), p.out...)
	res.Line = protocol.Format(res.Commands)
	res.ResourcesAfter = p.ledger.Resources()
	res.Deferred = p.queue.Items()
	res.Elapsed = time.Since(start)

	p.logger.Info("turn",
		"turn", p.turn,
		"resources", res.ResourcesBefore,
		"spent", p.ledger.Spent(),
		"commands", len(res.Commands),
		"deferred", len(res.Deferred),
		"cities", len(p.world.Cities()),
		"isolated_pads", len(p.world.IsolatedPads()),
		"isolated_hangouts", len(p.world.IsolatedHangouts()),
		"elapsed", res.Elapsed,
	)
	return res
}

// sync applies the judge's snapshot: the balance, newly arrived buildings
// and the routes it reports as built.
func (p *Planner) sync(t *protocol.Turn) {
	p.ledger.Reset(t.Resources)
	for _, nb := range t.Buildings {
		if err := p.world.AddBuilding(nb.Building()); err != nil {
			p.logger.Warn("ignoring building", "turn", p.turn, "id", nb.ID, "err", err)
		}
	}
	for _, r := range t.Routes {
		if err := p.world.ObserveRoute(r.A, r.B, r.Capacity); err != nil {
			p.logger.Warn("unknown route reported", "turn", p.turn, "a", r.A, "b", r.B, "err", err)
		}
	}
}

// nothingToDo reports a world with no city and nothing left to pair.
func (p *Planner) nothingToDo() bool {
	if len(p.world.Cities()) > 0 || p.queue.Len() > 0 {
		return false
	}
	return len(p.world.IsolatedPads()) == 0 || len(p.world.IsolatedHangouts()) == 0
}
