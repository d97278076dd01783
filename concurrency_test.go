// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package optschema

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sync/errgroup"
)

func TestSchema_concurrentFirstUse(t *testing.T) {
	t.Run("will compute the same defaults", func(t *testing.T) {
		t.Run("if many goroutines use a fresh schema at once", func(t *testing.T) {
			inner := MustDefine("ConcurrentInner",
				Bool("on", StoreTrue()),
				Bool("off", StoreFalse()),
				Int("k", StoreConst(7)),
				WithVariant("Lit", Values{"on": true}),
			)
			outer := MustDefine("ConcurrentOuter",
				Nested("inner", inner),
				Int("n", Default(1)),
			)

			var g errgroup.Group
			results := make([]string, 64)
			for i := range results {
				g.Go(func() error {
					inst, err := Parse(outer, fmt.Sprintf("--n %d --inner 'Lit(k=%d)'", i, i))
					if err != nil {
						return err
					}
					results[i] = inst.Minimal()
					return nil
				})
			}

			err := g.Wait()
			if !assert.Nil(t, err) {
				return
			}

			ds, err := inner.Defaults()
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, Values{"on": false, "off": true, "k": nil}, ds) {
				return
			}
			for i, s := range results {
				expected := fmt.Sprintf("--inner 'Lit(k=%d)' --n %d", i, i)
				if i == 1 {
					expected = "--inner 'Lit(k=1)'"
				}
				if !assert.Equal(t, expected, s) {
					return
				}
			}
		})
	})

	t.Run("will not race with variant registration", func(t *testing.T) {
		s := MustDefine("ConcurrentVariants", Int("x"))

		var g errgroup.Group
		for i := 0; i < 32; i++ {
			g.Go(func() error {
				return s.RegisterVariant(fmt.Sprintf("V%d", i), Values{"x": i})
			})
			g.Go(func() error {
				_ = MustNew(s, Values{"x": i}).Label()
				_ = s.VariantsHelp()
				return nil
			})
		}

		err := g.Wait()
		if !assert.Nil(t, err) {
			return
		}
		if !assert.Len(t, s.Variants(), 32) {
			return
		}
	})
}
