//go:build integration

package reportintegrationtests

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/Black-And-White-Club/frolf-progression/config"
	"github.com/Black-And-White-Club/frolf-progression/integration_tests/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportAgainstPostgres(t *testing.T) {
	env := testutils.GetOrCreateTestEnv(t)
	a := env.NewApp(t, config.DriverPGX)
	ctx := context.Background()
	players := a.Modules.PlayerModule.PlayerService
	levels := a.Modules.LevelModule.LevelService
	reports := a.Modules.ReportModule.ReportService

	for _, name := range []string{"alice", "bob", "carol"} {
		_, err := players.RegisterPlayer(ctx, name)
		require.NoError(t, err)
	}
	l1, err := levels.CreateLevel(ctx, "Meadow", 1)
	require.NoError(t, err)
	l2, err := levels.CreateLevel(ctx, "Cave, Deep", 2)
	require.NoError(t, err)
	gold, err := levels.CreatePrize(ctx, "Gold")
	require.NoError(t, err)

	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err = levels.RecordProgress(ctx, "alice", l1.ID, 10, &day)
	require.NoError(t, err)
	_, err = levels.RecordProgress(ctx, "alice", l2.ID, 3, nil)
	require.NoError(t, err)
	_, err = levels.RecordProgress(ctx, "bob", l2.ID, 7, &day)
	require.NoError(t, err)
	_, err = levels.GrantReward(ctx, "alice", l1.ID, gold.ID)
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := reports.ExportCSV(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "Player ID,Level Title,Completed,Prize Title\n"+
		"alice,Meadow,true,Gold\n"+
		"alice,\"Cave, Deep\",false,\n"+
		"bob,\"Cave, Deep\",true,\n"+
		"carol,,,\n", buf.String())

	buf.Reset()
	n, err = reports.ExportXLSX(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Progress")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"alice", "Meadow", "true", "Gold"}, rows[1])
	assert.Equal(t, "carol", rows[4][0])
}
