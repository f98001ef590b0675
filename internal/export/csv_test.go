package export

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/prodline/internal/domain"
	"github.com/alexanderramin/prodline/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }

func TestProduction_ModelRows(t *testing.T) {
	var buf bytes.Buffer
	err := Production(&buf, &engine.ProductionReport{
		Area: domain.AreaCabinetFoaming,
		Rows: []engine.ReconciliationRow{
			{Model: "300L", Plan: 50, Actual: 40, Percent: 80},
			{Model: "Mystery", Actual: 5, Unlisted: true},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Model,Plan,Actual,Percent,Unlisted\n300L,50,40,80,false\nMystery,0,5,0,true\n", buf.String())
}

func TestProduction_MachineRows(t *testing.T) {
	var buf bytes.Buffer
	err := Production(&buf, &engine.ProductionReport{
		Area:        domain.AreaCRF,
		MachineRows: []engine.MachineRow{{Machine: "Komatsu Press", Part: "Side Panel", Model: "300L", Actual: 12}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Machine,Part,Model,Actual\nKomatsu Press,Side Panel,300L,12\n", buf.String())
}

func TestFlow_FirstStageHasBlankWIP(t *testing.T) {
	wip := -10
	var buf bytes.Buffer
	err := Flow(&buf, &engine.FlowReport{
		TotalPlan: 60,
		Stages: []engine.StageBalance{
			{Area: domain.AreaPreAssembly, Actual: 30, Balance: 30},
			{Area: domain.AreaCabinetFoaming, Actual: 40, Balance: 20, WIP: &wip, WIPAnomaly: true},
		},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Area,Plan,Actual,Balance,WIP_Stock", lines[0])
	assert.Equal(t, "Pre-assembly,60,30,30,", lines[1])
	assert.Equal(t, "Cabinet foaming,60,40,20,-10", lines[2])
}

func TestPlans(t *testing.T) {
	var monthly bytes.Buffer
	require.NoError(t, MonthlyPlan(&monthly, &engine.MonthlyRollupReport{
		Items: []engine.ItemQuantity{{Model: "300L", Quantity: 1200}},
	}))
	assert.Equal(t, "Model,Quantity\n300L,1200\n", monthly.String())

	var ranged bytes.Buffer
	require.NoError(t, RangePlan(&ranged, &engine.RangeRollupReport{
		Items: []engine.ItemQuantity{{Model: "300L", Quantity: 100}},
		Daily: []engine.DayTotal{{Date: day(1), Total: 50}, {Date: day(2), Total: 50}},
	}))
	assert.Equal(t, "Model,Quantity\n300L,100\n\nDate,Total\n2024-03-01,50\n2024-03-02,50\n", ranged.String())
}

func TestToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.csv")
	err := ToFile(path, func(w io.Writer) error {
		return MonthlyPlan(w, &engine.MonthlyRollupReport{})
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Model,Quantity\n", string(data))

	err = ToFile(filepath.Join(t.TempDir(), "missing", "x.csv"), func(io.Writer) error { return nil })
	assert.ErrorContains(t, err, "creating")
}
