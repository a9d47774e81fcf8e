// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/dungeonfi/dungeon/builtin"
	"github.com/dungeonfi/dungeon/builtin/master"
	"github.com/dungeonfi/dungeon/builtin/master/pool"
	"github.com/dungeonfi/dungeon/dungeon"
	"github.com/dungeonfi/dungeon/state"
)

// Config is the user customized genesis.
type Config struct {
	Operator       dungeon.Address `yaml:"operator"`
	Treasury       dungeon.Address `yaml:"treasury"`
	RewardPerBlock *Amount         `yaml:"rewardPerBlock"`
	StartBlock     uint32          `yaml:"startBlock"`
	Fees           Fees            `yaml:"fees,omitempty"`
	Tokens         []Token         `yaml:"tokens"`
	Pools          []Pool          `yaml:"pools,omitempty"`
}

// Fees overrides the default fee rates, in basis points.
type Fees struct {
	Dev          *uint64 `yaml:"dev,omitempty"`
	Treasury     *uint64 `yaml:"treasury,omitempty"`
	MultiBurnDev *uint64 `yaml:"multiBurnDev,omitempty"`
	Emergency    *uint64 `yaml:"emergency,omitempty"`
}

// Token is a stakeable token allocated at genesis.
type Token struct {
	Name     string          `yaml:"name"`
	Symbol   string          `yaml:"symbol"`
	Address  dungeon.Address `yaml:"address"`
	Balances []Balance       `yaml:"balances"`
}

// Balance is the genesis holding of an account.
// Allowance is approved to the master, so the holder can stake right away.
type Balance struct {
	Holder    dungeon.Address `yaml:"holder"`
	Amount    *Amount         `yaml:"amount"`
	Allowance *Amount         `yaml:"allowance,omitempty"`
}

// Pool is a pool added by the operator at genesis.
type Pool struct {
	Kind              pool.Kind         `yaml:"kind"`
	Tokens            []dungeon.Address `yaml:"tokens"`
	Weight            uint64            `yaml:"weight,omitempty"`
	Interval          uint32            `yaml:"interval,omitempty"`
	RewardPerInterval *Amount           `yaml:"rewardPerInterval,omitempty"`
	BurnPerInterval   *Amount           `yaml:"burnPerInterval,omitempty"`
}

// Amount is a token amount in base units. Scientific notation is accepted, e.g. 200e18.
type Amount uint256.Int

// ParseAmount parses a non-negative integer amount.
func ParseAmount(s string) (*uint256.Int, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(s, "_", ""))
	if err != nil {
		return nil, errors.Wrapf(err, "amount %q", s)
	}
	if d.Sign() < 0 || !d.Equal(d.Truncate(0)) {
		return nil, fmt.Errorf("amount %q: must be a non-negative integer", s)
	}
	v, overflow := uint256.FromBig(d.BigInt())
	if overflow {
		return nil, fmt.Errorf("amount %q: overflows 256 bits", s)
	}
	return v, nil
}

// NewAmount wraps v.
func NewAmount(v *uint256.Int) *Amount {
	return (*Amount)(v.Clone())
}

// Int returns the amount as an uint256, nil for a nil amount.
func (a *Amount) Int() *uint256.Int {
	if a == nil {
		return nil
	}
	return (*uint256.Int)(a).Clone()
}

func (a *Amount) MarshalYAML() (any, error) {
	return (*uint256.Int)(a).Dec(), nil
}

func (a *Amount) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: amount must be a scalar", node.Line)
	}
	v, err := ParseAmount(node.Value)
	if err != nil {
		return errors.Wrapf(err, "line %d", node.Line)
	}
	*a = Amount(*v)
	return nil
}

// ParseConfig decodes a YAML genesis document. Unknown fields are rejected.
func ParseConfig(data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode genesis")
	}
	return &cfg, nil
}

// LoadConfig reads and decodes the genesis file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

// MasterConfig returns the config the master is initialized with.
func (c *Config) MasterConfig() *master.Config {
	cfg := master.NewConfig(c.Operator, c.Treasury, builtin.Iron.Address, c.RewardPerBlock.Int(), c.StartBlock)
	for _, fee := range []struct {
		to   *uint64
		from *uint64
	}{
		{&cfg.DevFeeBP, c.Fees.Dev},
		{&cfg.TreasuryFeeBP, c.Fees.Treasury},
		{&cfg.MultiBurnDevFeeBP, c.Fees.MultiBurnDev},
		{&cfg.EmergencyFeeBP, c.Fees.Emergency},
	} {
		if fee.from != nil {
			*fee.to = *fee.from
		}
	}
	return cfg
}

func (c *Config) validate() error {
	if c.RewardPerBlock == nil {
		return errors.New("rewardPerBlock must be set")
	}
	if err := c.MasterConfig().Validate(); err != nil {
		return err
	}

	known := map[dungeon.Address]bool{builtin.Iron.Address: true}
	for _, token := range c.Tokens {
		switch {
		case token.Address.IsZero():
			return fmt.Errorf("token %q: address must be set", token.Symbol)
		case token.Address == builtin.Master.Address, token.Address == builtin.Iron.Address:
			return fmt.Errorf("token %q: address %v is reserved", token.Symbol, token.Address)
		case known[token.Address]:
			return fmt.Errorf("token %q: duplicated address %v", token.Symbol, token.Address)
		}
		known[token.Address] = true
		for _, b := range token.Balances {
			if b.Amount == nil || (*uint256.Int)(b.Amount).IsZero() {
				return fmt.Errorf("token %q: %v: balance must be a non-zero integer", token.Symbol, b.Holder)
			}
		}
	}
	for i, p := range c.Pools {
		for _, addr := range p.Tokens {
			if !known[addr] {
				return fmt.Errorf("pool %d: unknown token %v", i, addr)
			}
		}
	}
	return nil
}

// NewCustomNet creates the genesis of a custom network.
func NewCustomNet(cfg *Config) (*Genesis, error) {
	return newGenesis("customnet", cfg)
}

func newGenesis(name string, cfg *Config) (*Genesis, error) {
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid genesis")
	}
	source, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}

	builder := new(Builder).
		Source(source).
		State(func(st *state.State) error {
			// the master holds every role of IRON
			ironToken := builtin.Iron.Native(st)
			if err := ironToken.Initialize(cfg.Operator, builtin.Master.Address, builtin.Master.Address); err != nil {
				return err
			}
			return ironToken.TransferOwnership(cfg.Operator, builtin.Master.Address)
		}).
		State(func(st *state.State) error {
			for _, t := range cfg.Tokens {
				token := builtin.Token(t.Address, st)
				if err := token.Initialize(t.Name, t.Symbol); err != nil {
					return errors.WithMessagef(err, "token %s", t.Symbol)
				}
				for _, b := range t.Balances {
					if err := token.Mint(b.Holder, b.Amount.Int()); err != nil {
						return errors.WithMessagef(err, "token %s", t.Symbol)
					}
					if b.Allowance == nil {
						continue
					}
					if err := token.Approve(b.Holder, builtin.Master.Address, b.Allowance.Int()); err != nil {
						return errors.WithMessagef(err, "token %s", t.Symbol)
					}
				}
			}
			return nil
		}).
		State(func(st *state.State) error {
			return builtin.Master.Native(st).Initialize(cfg.MasterConfig())
		}).
		State(func(st *state.State) error {
			m := builtin.Master.Native(st)
			for i, p := range cfg.Pools {
				if err := addPool(m, cfg.Operator, p); err != nil {
					return errors.WithMessagef(err, "pool %d", i)
				}
			}
			return nil
		})
	return &Genesis{builder, name}, nil
}

func addPool(m *master.Master, operator dungeon.Address, p Pool) (err error) {
	switch p.Kind {
	case pool.KindNormal:
		if len(p.Tokens) != 1 {
			return errors.New("normal pool stakes a single token")
		}
		_, err = m.AddNormalPool(operator, p.Tokens[0], builtin.Iron.Address, p.Weight, 0)
	case pool.KindBurn:
		if len(p.Tokens) != 1 {
			return errors.New("burn pool stakes a single token")
		}
		_, err = m.AddBurnPool(operator, p.Tokens[0], builtin.Iron.Address, p.Interval, p.RewardPerInterval.Int(), p.BurnPerInterval.Int(), 0)
	case pool.KindMultiBurn:
		_, err = m.AddMultiBurnPool(operator, p.Tokens, builtin.Iron.Address, p.Interval, p.RewardPerInterval.Int(), p.BurnPerInterval.Int(), 0)
	default:
		err = fmt.Errorf("unknown kind %v", p.Kind)
	}
	return
}
