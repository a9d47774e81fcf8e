// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ledger runs invocations of the builtin contracts against persisted state,
// and owns the block clock.
package ledger

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/dungeonfi/dungeon/dungeon"
	"github.com/dungeonfi/dungeon/genesis"
	"github.com/dungeonfi/dungeon/kv"
	"github.com/dungeonfi/dungeon/log"
	"github.com/dungeonfi/dungeon/muxdb"
	"github.com/dungeonfi/dungeon/state"
)

const (
	storeName   = "ledger"
	propBucket  = kv.Bucket("p.") // genesis id, best block and pending invocations
	blockBucket = kv.Bucket("b.") // block summaries by number
)

var (
	logger = log.WithContext("pkg", "ledger")

	genesisIDKey = []byte("genesis-id")
	bestBlockKey = []byte("best-block")
	pendingKey   = []byte("pending")
)

// Options optional parameters for Ledger.
type Options struct {
	// StorageCacheSize is the number of committed storage slots kept in memory.
	StorageCacheSize int
	// OnDemand seals a block after every successful invocation.
	OnDemand bool
}

// Ledger executes invocations one at a time. Each invocation runs on a fresh
// state at the number of the block being built, and is committed atomically
// if it succeeds.
//
// It's thread-safe.
type Ledger struct {
	store     kv.Store
	props     kv.Getter
	blocks    kv.Getter
	stater    *state.Stater
	genesisID dungeon.Bytes32
	onDemand  bool
	now       func() uint64

	mu      sync.Mutex
	pending uint32 // guarded by mu
	best    atomic.Pointer[Block]
}

// New creates the ledger on db. An empty db is initialized with gen, otherwise
// the genesis db was built from must match gen.
func New(db *muxdb.MuxDB, gen *genesis.Genesis, opts Options) (*Ledger, error) {
	store := db.NewStore(storeName)
	l := &Ledger{
		store:     store,
		props:     propBucket.NewGetter(store),
		blocks:    blockBucket.NewGetter(store),
		stater:    state.NewStater(store, opts.StorageCacheSize),
		genesisID: gen.ID(),
		onDemand:  opts.OnDemand,
		now:       func() uint64 { return uint64(time.Now().Unix()) },
	}

	val, err := l.props.Get(genesisIDKey)
	if err != nil {
		if !l.props.IsNotFound(err) {
			return nil, err
		}
		if err := l.writeGenesis(gen); err != nil {
			return nil, errors.Wrap(err, "write genesis")
		}
		return l, nil
	}

	if dungeon.BytesToBytes32(val) != l.genesisID {
		return nil, errors.New("genesis mismatch")
	}
	var best Block
	if err := loadRLP(l.props, bestBlockKey, &best); err != nil {
		return nil, errors.Wrap(err, "load best block")
	}
	if err := loadRLP(l.props, pendingKey, &l.pending); err != nil && !l.props.IsNotFound(err) {
		return nil, errors.Wrap(err, "load pending invocations")
	}
	l.setBest(&best)
	logger.Info("ledger loaded", "genesis", gen.Name(), "best", best.Number)
	return l, nil
}

func (l *Ledger) writeGenesis(gen *genesis.Genesis) error {
	st := l.stater.NewState()
	if err := gen.Build(st); err != nil {
		return err
	}

	b0 := &Block{Timestamp: l.now()}
	bulk := l.store.Bulk()
	if err := propBucket.NewPutter(bulk).Put(genesisIDKey, l.genesisID.Bytes()); err != nil {
		return err
	}
	if err := l.putBlock(bulk, b0); err != nil {
		return err
	}
	if err := l.stater.Commit(st.Stage(), bulk); err != nil {
		return err
	}
	l.setBest(b0)
	logger.Info("genesis written", "name", gen.Name(), "id", l.genesisID)
	return nil
}

// putBlock puts blk into bulk as the best block, and resets the pending invocations.
func (l *Ledger) putBlock(bulk kv.Bulk, blk *Block) error {
	props := propBucket.NewPutter(bulk)
	if err := saveRLP(blockBucket.NewPutter(bulk), blockKey(blk.Number), blk); err != nil {
		return err
	}
	if err := saveRLP(props, bestBlockKey, blk); err != nil {
		return err
	}
	return saveRLP(props, pendingKey, uint32(0))
}

func (l *Ledger) setBest(blk *Block) {
	l.best.Store(blk)
	metricBestBlock().Set(int64(blk.Number))
}

// GenesisID returns the id of the genesis the ledger was built from.
func (l *Ledger) GenesisID() dungeon.Bytes32 {
	return l.genesisID
}

// Best returns the best block, the newest sealed one.
func (l *Ledger) Best() *Block {
	cpy := *l.best.Load()
	return &cpy
}

// GetBlock returns the sealed block of the given number.
func (l *Ledger) GetBlock(num uint32) (*Block, error) {
	var blk Block
	if err := loadRLP(l.blocks, blockKey(num), &blk); err != nil {
		return nil, err
	}
	return &blk, nil
}

// IsNotFound returns whether an error indicates key not found.
func (l *Ledger) IsNotFound(err error) bool {
	return l.store.IsNotFound(err)
}

// Invoke runs fn on a fresh state at the number of the block being built.
// The writes of fn are committed only if it returns nil.
// It returns the number of the block fn ran at.
func (l *Ledger) Invoke(fn func(st *state.State, block uint32) error) (uint32, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := time.Now()
	num := l.best.Load().Number + 1
	if num == 0 {
		return 0, errors.New("block number overflow")
	}

	st := l.stater.NewState()
	if err := fn(st, num); err != nil {
		metricInvocations().AddWithLabel(1, map[string]string{"status": "failed"})
		return num, err
	}

	var (
		bulk    = l.store.Bulk()
		pending = l.pending + 1
		sealed  *Block
	)
	if l.onDemand {
		sealed = &Block{Number: num, Timestamp: l.now(), Invocations: pending}
		if err := l.putBlock(bulk, sealed); err != nil {
			return num, err
		}
		pending = 0
	} else if err := saveRLP(propBucket.NewPutter(bulk), pendingKey, pending); err != nil {
		return num, err
	}
	if err := l.stater.Commit(st.Stage(), bulk); err != nil {
		return num, errors.Wrap(err, "commit")
	}

	l.pending = pending
	if sealed != nil {
		l.setBest(sealed)
	}
	metricInvocations().AddWithLabel(1, map[string]string{"status": "ok"})
	metricInvokeDuration().Observe(time.Since(start).Milliseconds())
	return num, nil
}

// View runs fn on a read-only snapshot of the committed state, at the number of the block being built.
// Writes made by fn are dropped.
func (l *Ledger) View(fn func(st *state.State, block uint32) error) error {
	l.mu.Lock()
	num := l.best.Load().Number + 1
	st, release, err := l.stater.NewReadOnly()
	l.mu.Unlock()
	if err != nil {
		return err
	}
	defer release()
	return fn(st, num)
}

// Advance seals n blocks. The first one carries the pending invocations.
func (l *Ledger) Advance(n uint32) (*Block, error) {
	if n == 0 {
		return l.Best(), nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	best := l.best.Load()
	if n > math.MaxUint32-best.Number {
		return nil, errors.New("block number overflow")
	}

	var (
		bulk = l.store.Bulk()
		now  = l.now()
		blk  *Block
	)
	for i := range n {
		blk = &Block{Number: best.Number + 1 + i, Timestamp: now}
		if i == 0 {
			blk.Invocations = l.pending
		}
		if err := l.putBlock(bulk, blk); err != nil {
			return nil, err
		}
	}
	if err := bulk.Write(); err != nil {
		return nil, err
	}

	l.pending = 0
	l.setBest(blk)
	logger.Debug("blocks sealed", "count", n, "best", blk.Number)
	cpy := *blk
	return &cpy, nil
}
