// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"

	"github.com/dungeonfi/dungeon/ledger"
)

var scheduleParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// parseSchedule parses a cron expression, with optional seconds, or a
// descriptor such as "@every 10s".
func parseSchedule(expr string) (cron.Schedule, error) {
	schedule, err := scheduleParser.Parse(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "parse block schedule %q", expr)
	}
	return schedule, nil
}

// blockProducer seals a block each time the schedule fires.
type blockProducer struct {
	ledger   *ledger.Ledger
	schedule cron.Schedule
	now      func() time.Time
}

func newBlockProducer(l *ledger.Ledger, schedule cron.Schedule) *blockProducer {
	return &blockProducer{l, schedule, time.Now}
}

// Run produces blocks until ctx is done.
func (p *blockProducer) Run(ctx context.Context) error {
	logger.Info("prepared to produce blocks")

	for {
		now := p.now()
		next := p.schedule.Next(now)
		if next.IsZero() {
			return errors.New("block schedule never fires")
		}

		timer := time.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
			best, err := p.ledger.Advance(1)
			if err != nil {
				return errors.Wrap(err, "seal block")
			}
			logger.Debug("block sealed", "number", best.Number, "invocations", best.Invocations)
		}
	}
}
