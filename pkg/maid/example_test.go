package maid_test

import (
	"fmt"

	"github.com/arthur-debert/maid/pkg/maid"
)

func ExampleMaid() {
	m := maid.New()

	m.GiveTask(func() { fmt.Println("stopping worker") })
	m.GiveTask(func() { fmt.Println("closing cache") })

	if err := m.DoCleaning(); err != nil {
		fmt.Println("cleanup failed:", err)
	}

	// Output:
	// stopping worker
	// closing cache
}

func ExampleMaid_SetTask() {
	m := maid.New()

	// Replacing a keyed slot disposes the previous occupant immediately.
	_ = m.SetTask("subscription", func() { fmt.Println("old subscription cancelled") })
	_ = m.SetTask("subscription", func() { fmt.Println("new subscription cancelled") })

	_ = m.DoCleaning()

	// Output:
	// old subscription cancelled
	// new subscription cancelled
}
