// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import "sync"

// Bucket is a key prefix. Stores derived from it see only the keys under the
// prefix, with the prefix stripped.
type Bucket string

var keyBufs = sync.Pool{New: func() any { return new([]byte) }}

// with calls fn with the prefixed key. The key is only valid during fn.
func (b Bucket) with(key []byte, fn func(k []byte) error) error {
	p := keyBufs.Get().(*[]byte)
	*p = append(append((*p)[:0], b...), key...)
	err := fn(*p)
	keyBufs.Put(p)
	return err
}

type bucketGetter struct {
	b   Bucket
	src Getter
}

func (g *bucketGetter) Get(key []byte) (val []byte, err error) {
	err = g.b.with(key, func(k []byte) error {
		val, err = g.src.Get(k)
		return err
	})
	return
}

func (g *bucketGetter) Has(key []byte) (has bool, err error) {
	err = g.b.with(key, func(k []byte) error {
		has, err = g.src.Has(k)
		return err
	})
	return
}

func (g *bucketGetter) IsNotFound(err error) bool { return g.src.IsNotFound(err) }

type bucketPutter struct {
	b   Bucket
	dst Putter
}

func (p *bucketPutter) Put(key, val []byte) error {
	return p.b.with(key, func(k []byte) error { return p.dst.Put(k, val) })
}

func (p *bucketPutter) Delete(key []byte) error {
	return p.b.with(key, p.dst.Delete)
}

// NewGetter narrows src to the bucket.
func (b Bucket) NewGetter(src Getter) Getter { return &bucketGetter{b, src} }

// NewPutter narrows dst to the bucket.
func (b Bucket) NewPutter(dst Putter) Putter { return &bucketPutter{b, dst} }

type bucketStore struct {
	bucketGetter
	bucketPutter
	src Store
}

// NewStore narrows src to the bucket, snapshots and bulks included.
func (b Bucket) NewStore(src Store) Store {
	return &bucketStore{bucketGetter{b, src}, bucketPutter{b, src}, src}
}

func (s *bucketStore) Snapshot() (Snapshot, error) {
	snap, err := s.src.Snapshot()
	if err != nil {
		return nil, err
	}
	return &struct {
		Getter
		ReleaseFunc
	}{s.bucketGetter.b.NewGetter(snap), snap.Release}, nil
}

func (s *bucketStore) Bulk() Bulk {
	bulk := s.src.Bulk()
	return &struct {
		Putter
		WriteFunc
	}{s.bucketPutter.b.NewPutter(bulk), bulk.Write}
}
