package engine

import (
	"testing"

	"github.com/alexanderramin/prodline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flowSnapshot() Snapshot {
	s := baseSnapshot(
		entry("p1", "2024-03-01", domain.AreaPreAssembly, cf("300L", 60), cf("200L", 20)),
		entry("c1", "2024-03-01", domain.AreaCabinetFoaming, cf("300L", 45), cf("200L", 25)),
		entry("f1", "2024-03-01", domain.AreaCFFinal, cf("300L", 30)),
		entry("d1", "2024-03-01", domain.AreaDoorFoaming, cf("300L", 90)),
		entry("x1", "2024-03-01", domain.AreaCRF, crf("Komatsu Press", "Side Panel", "300L", 500)),
		entry("p2", "2024-03-02", domain.AreaPreAssembly, cf("300L", 1000)),
	)
	s.Daily["2024-03-01"] = domain.TargetMap{"300L": 70, "200L": 30, "Table Top": 400}
	return s
}

func TestProcessFlow_AllModels(t *testing.T) {
	r := ProcessFlow(flowSnapshot(), FlowQuery{Date: day("2024-03-01")})

	assert.Equal(t, 100, r.TotalPlan, "only assembly-line models count toward the plan")
	require.Len(t, r.Stages, 3)

	pre, cab, fin := r.Stages[0], r.Stages[1], r.Stages[2]
	assert.Equal(t, domain.AreaPreAssembly, pre.Area)
	assert.Equal(t, 80, pre.Actual)
	assert.Nil(t, pre.WIP)
	assert.Equal(t, 20, pre.Balance)

	assert.Equal(t, 70, cab.Actual)
	require.NotNil(t, cab.WIP)
	assert.Equal(t, 10, *cab.WIP)
	assert.False(t, cab.WIPAnomaly)

	assert.Equal(t, 30, fin.Actual)
	require.NotNil(t, fin.WIP)
	assert.Equal(t, 40, *fin.WIP)
	assert.Equal(t, 70, fin.Balance)

	assert.Equal(t, 90, r.AreaActuals[domain.AreaDoorFoaming])
	_, hasCRF := r.AreaActuals[domain.AreaCRF]
	assert.False(t, hasCRF, "machine-nested output never feeds the main line")
	assert.False(t, r.HasAnomaly())
}

func TestProcessFlow_ModelFilter(t *testing.T) {
	r := ProcessFlow(flowSnapshot(), FlowQuery{Date: day("2024-03-01"), Model: "200L"})

	assert.Equal(t, 30, r.TotalPlan)
	assert.Equal(t, 20, r.Stages[0].Actual)
	assert.Equal(t, 25, r.Stages[1].Actual)
	assert.Equal(t, 0, r.Stages[2].Actual)

	require.NotNil(t, r.Stages[1].WIP)
	assert.Equal(t, -5, *r.Stages[1].WIP, "negative WIP is reported, not clamped")
	assert.True(t, r.Stages[1].WIPAnomaly)
	assert.True(t, r.HasAnomaly())
	assert.Equal(t, 10, r.Stages[0].Balance)
	assert.Equal(t, 30, r.Stages[2].Balance)
}

func TestProcessFlow_NoPlanNoEntries(t *testing.T) {
	r := ProcessFlow(baseSnapshot(), FlowQuery{Date: day("2030-01-01")})
	assert.Equal(t, 0, r.TotalPlan)
	for _, st := range r.Stages {
		assert.Equal(t, 0, st.Actual)
		assert.Equal(t, 0, st.Balance)
	}
	assert.Nil(t, r.Stages[0].WIP)
}

func TestProcessFlow_CustomStages(t *testing.T) {
	r := ProcessFlow(flowSnapshot(), FlowQuery{
		Date:   day("2024-03-01"),
		Stages: []domain.Area{domain.AreaDoorFoaming, domain.AreaCFFinal},
	})
	require.Len(t, r.Stages, 2)
	require.NotNil(t, r.Stages[1].WIP)
	assert.Equal(t, 60, *r.Stages[1].WIP)
}
