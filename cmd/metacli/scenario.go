package main

import (
	"fmt"
	"sort"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"metareflect/internal/meta"
	"metareflect/internal/observ"
)

// scenarioFn runs one check and returns a human-readable failure, or "" on
// success. Each scenario builds whatever registry it needs: the primitive-
// and Handle-dependent ones use the bootstrapped default, the refcount
// scenario registers its own probe type on a bare registry.
type scenarioFn func() string

var scenarios = map[string]scenarioFn{
	"primitive-echo":    scenarioPrimitiveEcho,
	"operator-dispatch": scenarioOperatorDispatch,
	"method-call":       scenarioMethodCall,
	"member-access":     scenarioMemberAccess,
	"refcount":          scenarioRefcount,
}

var scenarioCmd = &cobra.Command{
	Use:   "scenario [name...]",
	Short: "Run the dynamic-value core's reference scenarios",
	Long:  `scenario exercises the registry's dispatch surface: inline primitive round trips, operator lookup, reflective method calls, member/free-function access, and refcounted destruction. With no arguments it runs every known scenario concurrently.`,
	RunE:  runScenario,
}

func runScenario(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = make([]string, 0, len(scenarios))
		for name := range scenarios {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	type outcome struct {
		name string
		fail string
	}
	results := make([]outcome, len(names))

	var mu sync.Mutex
	timer := observ.NewTimer()

	group, _ := errgroup.WithContext(cmd.Context())
	for i, name := range names {
		i, name := i, name
		fn, ok := scenarios[name]
		if !ok {
			return fmt.Errorf("unknown scenario %q", name)
		}
		group.Go(func() error {
			idx := -1
			if showTimings {
				mu.Lock()
				idx = timer.Begin(name)
				mu.Unlock()
			}
			fail := fn()
			if showTimings {
				mu.Lock()
				timer.End(idx, fail)
				mu.Unlock()
			}
			results[i] = outcome{name: name, fail: fail}
			return nil
		})
	}
	_ = group.Wait()

	failed := false
	for _, r := range results {
		if r.fail != "" {
			failed = true
			fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %s\n", r.name, r.fail)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "ok   %s\n", r.name)
		}
	}

	if showTimings {
		fmt.Fprint(cmd.OutOrStdout(), timer.Summary())
	}

	if failed {
		return fmt.Errorf("one or more scenarios failed")
	}
	return nil
}

func scenarioPrimitiveEcho() string {
	r := meta.Default()
	h := meta.HandleI32(r, 34)
	if got := meta.As2[int32](h); got != 34 {
		return fmt.Sprintf("expected 34, got %d", got)
	}
	if h.Slot() != meta.InvalidSlot {
		return "inline handle must not own a pool slot"
	}
	return ""
}

func scenarioOperatorDispatch() string {
	r := meta.Default()
	i32, ok := r.Find("i32")
	if !ok {
		return "i32 is not registered"
	}
	sig, err := meta.PackSignature([]meta.Parameter{
		{Type: i32, Qualifiers: meta.Temporary},
		{Type: i32, Qualifiers: meta.Temporary},
	})
	if err != nil {
		return err.Error()
	}
	add := r.GetBinaryOp(i32, meta.OpAdd, sig)
	result := add(meta.InlineI32(r, 3), meta.InlineI32(r, 4))
	if got := meta.As2[int32](result); got != 7 {
		return fmt.Sprintf("3 + 4 = %d, want 7", got)
	}
	return ""
}

func scenarioMethodCall() string {
	r := meta.Default()
	handleType, ok := r.Find("Handle")
	if !ok {
		return "Handle is not registered"
	}
	emptySig, err := meta.PackSignature(nil)
	if err != nil {
		return err.Error()
	}
	method := r.GetMethod(handleType, "valid", emptySig)

	valid := meta.HandleI32(r, 1)
	validSelf := meta.NewView(r, &valid, handleType, meta.Reference)
	out := method(validSelf, meta.SpanEmpty(r))
	if got := meta.As2[bool](out); !got {
		return "valid handle's valid() should report true"
	}

	empty := meta.EmptyHandle(r)
	emptySelf := meta.NewView(r, &empty, handleType, meta.Reference)
	out2 := method(emptySelf, meta.SpanEmpty(r))
	if got := meta.As2[bool](out2); got {
		return "empty handle's valid() should report false"
	}
	return ""
}

func scenarioMemberAccess() string {
	r := meta.NewRegistry()
	id := meta.RegisterGoType[vector2](r, "scenario.vector2")
	emptySig, err := meta.PackSignature(nil)
	if err != nil {
		return err.Error()
	}
	r.AddConstructor(id, emptySig, func(out meta.View, args meta.Span) {})
	r.AddDestructor(id, func(meta.View) {})
	r.AddMember(id, "x", func(self meta.View) meta.Handle {
		v := meta.Raw[vector2](self)
		return meta.HandleI32(r, v.X)
	})
	r.AddMember(id, "y", func(self meta.View) meta.Handle {
		v := meta.Raw[vector2](self)
		return meta.HandleI32(r, v.Y)
	})
	r.AddFunction(id, "origin", emptySig, func(args meta.Span) meta.Handle {
		return meta.Construct(r, id, args)
	})

	h := meta.Construct(r, id, meta.SpanEmpty(r))
	defer h.Release()
	*meta.Raw[vector2](h.Peek()) = vector2{X: 3, Y: 4}

	x := r.GetMember(id, "x")(h.Peek())
	defer x.Release()
	if got := meta.As2[int32](x); got != 3 {
		return fmt.Sprintf("member x should read 3, got %d", got)
	}

	originFn := r.GetFunction(id, "origin", emptySig)
	origin := originFn(meta.SpanEmpty(r))
	defer origin.Release()
	ox := r.GetMember(id, "x")(origin.Peek())
	defer ox.Release()
	if got := meta.As2[int32](ox); got != 0 {
		return fmt.Sprintf("origin() free function should zero-construct, got x=%d", got)
	}
	return ""
}

type vector2 struct{ X, Y int32 }

func scenarioRefcount() string {
	r := meta.NewRegistry()
	destroyed := 0
	id := meta.RegisterGoType[refcountProbe](r, "scenario.refcountProbe")
	emptySig, err := meta.PackSignature(nil)
	if err != nil {
		return err.Error()
	}
	r.AddConstructor(id, emptySig, func(out meta.View, args meta.Span) {})
	r.AddDestructor(id, func(v meta.View) { destroyed++ })

	h := meta.Construct(r, id, meta.SpanEmpty(r))
	clone := h.Clone()
	h.Release()
	clone.Release()

	if destroyed != 1 {
		return fmt.Sprintf("expected the destructor to run exactly once, ran %d times", destroyed)
	}
	return ""
}

type refcountProbe struct{ n int }
