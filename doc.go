/*
Package pinion is a small, composable state machine framework for building
finite-state computations whose states can themselves be state machines.

It separates three concerns: the State (a unit of work against a mutable
context), the Policy (the control flow deciding which state runs next), and
the Machine (the loop driving a run to termination). A Composite machine
satisfies the State contract itself, so a sub-machine nests inside an outer
machine indistinguishable from an atomic state.

# Concept

A run is strictly sequential: the machine executes the current state, then
consults the policy for the next one, until the policy signals terminal or a
state fails. Failures are never swallowed or retried; the caller always gets
the context as it stood when the run stopped, so partial progress stays
inspectable. Retry, if wanted, is a policy decision (re-enter the same or a
recovery state), not a loop feature.

Long-running work (network fetches, external jobs) suspends through the
async adapter: the state launches a Task and the run waits on its completion
without any concurrency leaking into the step sequence.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/pinionworks/pinion"
	)

	type greeting struct {
		Name    string
		Message string
	}

	func main() {
		compose := pinion.StateFunc("compose", func(_ context.Context, g *greeting) error {
			g.Message = "hello, " + g.Name
			return nil
		})
		deliver := pinion.StateFunc("deliver", func(_ context.Context, g *greeting) error {
			log.Println(g.Message)
			return nil
		})

		m := pinion.New("greeter", compose, pinion.Sequence(compose, deliver))

		final, err := m.Run(context.Background(), greeting{Name: "world"})
		if err != nil {
			log.Fatal(err)
		}
		log.Println("done:", final.Message)
	}

Each Machine owns its context for the duration of one run. Independent runs
may execute concurrently as long as the states they share are stateless;
nested runs exchange data with their parent only through the explicit
projection and merge functions given to Nest.
*/
package pinion

// Version is the library version. Overridable at build time via -ldflags.
var Version = "0.4.0"
