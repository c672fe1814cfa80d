package queue

import (
	"testing"

	"restaurantcore/internal/testutil"
)

func TestBrokerIsIndependentOfTheService(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.Under("internal", "pkg"), "brokers move opaque bytes")
}
