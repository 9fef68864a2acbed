package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/relboard/pkg/domain/model"
	"github.com/m-mizutani/relboard/pkg/domain/types"
)

func TestBuildActivity(t *testing.T) {
	releases := []*model.Release{
		{ID: "1", Product: "Payments Gateway", Name: "v2.3", Date: "2024-03-15"},
		{ID: "2", Product: "User Authentication", Name: "v1.5", Date: "2024-03-10"},
	}
	incidents := []*model.Incident{
		{ID: "INC-002", Name: "Login token rejection", DateReported: "2024-03-11",
			LinkedRelease: model.ReleaseRef{ID: "2", Name: "User Authentication v1.5"}},
		{ID: "INC-009", Name: "Same day", DateReported: "2024-03-15"},
	}

	items := model.BuildActivity(releases, incidents, 0)
	gt.A(t, items).Length(4)

	gt.V(t, items[0].ID).Equal("1")
	gt.V(t, items[0].Kind).Equal(types.ActivityKindRelease)
	gt.V(t, items[0].Title).Equal("Payments Gateway v2.3")
	gt.V(t, items[1].ID).Equal("INC-009")
	gt.V(t, items[2].ID).Equal("INC-002")
	gt.String(t, items[2].Summary).Contains("User Authentication v1.5")
	gt.V(t, items[3].ID).Equal("2")

	limited := model.BuildActivity(releases, incidents, 2)
	gt.A(t, limited).Length(2)
}
