//go:build integration

package playerintegrationtests

import (
	"os"
	"testing"

	"github.com/Black-And-White-Club/frolf-progression/integration_tests/testutils"
)

func TestMain(m *testing.M) {
	code := m.Run()
	testutils.Terminate()
	os.Exit(code)
}
