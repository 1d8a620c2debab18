package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lab-portal/internal/model"
)

func TestLabManualRequest_ToModelNormalises(t *testing.T) {
	m := LabManualRequest{
		Product: "p1",
		Tasks:   []*TaskRequest{{Solution: "run nmap"}},
	}.ToModel()

	assert.Equal(t, "p1", m.Product)
	assert.Equal(t, []string{}, m.LabInstructions)
	assert.Equal(t, []model.Task{{Task: []string{}, Solution: "run nmap"}}, m.Tasks)
}

func TestCourseVideoRequest_DefaultGroupName(t *testing.T) {
	m := CourseVideoRequest{
		Product: "p1",
		Groups: []*VideoGroupRequest{
			{Iframes: []*IframeRequest{{Iframe: "<iframe/>"}}},
			{GroupName: "Week 2"},
		},
	}.ToModel()

	assert.Equal(t, "Group", m.Groups[0].GroupName)
	assert.Equal(t, "Week 2", m.Groups[1].GroupName)
	assert.Equal(t, []model.Iframe{}, m.Groups[1].Iframes)
}

func TestCourseMaterialRequest_ToModel(t *testing.T) {
	m := CourseMaterialRequest{
		Product:    "p1",
		DriveLinks: [][]*DriveLinkRequest{{{Link: "https://a"}, {Link: "https://b"}}, {}},
	}.ToModel()

	assert.Equal(t, [][]model.DriveLink{{{Link: "https://a"}, {Link: "https://b"}}, {}}, m.DriveLinks)
}
