package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/truckline/bdm-console/internal/model"
)

func TestSeedFileParsing(t *testing.T) {
	data := []byte(`
frameworks:
  - name: FAINT
    description: Default qualification framework
    active: true
    display_order: 1
    structure:
      categories:
        - name: funds
          display_name: Funds
          color: "#2d6a4f"
          questions:
            - Is there budget allocated?
            - Who controls the budget?
bdms:
  - bdm_id: bdm-1
    full_name: Dana Cole
    email: dana@example.com
    is_manager: false
dealerships:
  - dealer_id: d1
    dealership: Metro Trucks North
    dealer_group: Metro Group
    bdm_id: bdm-1
    state: QLD
    region: Metro
`)

	var sf seedFile
	require.NoError(t, yaml.Unmarshal(data, &sf))

	require.Len(t, sf.Frameworks, 1)
	fw := sf.Frameworks[0]
	assert.Equal(t, "FAINT", fw.Name)
	assert.True(t, fw.Active)
	require.Len(t, fw.Structure.Categories, 1)
	cat := fw.Structure.Categories[0]
	assert.Equal(t, model.CategoryFunds, cat.Name)
	assert.Equal(t, "Funds", cat.DisplayName)
	assert.Len(t, cat.Questions, 2)

	require.Len(t, sf.BDMs, 1)
	assert.Equal(t, "Dana Cole", sf.BDMs[0].FullName)

	require.Len(t, sf.Dealerships, 1)
	assert.Equal(t, "Metro Group", sf.Dealerships[0].DealerGroup)
	assert.Equal(t, "bdm-1", sf.Dealerships[0].BDMID)
}
