package dto

import "lab-portal/internal/model"

const defaultGroupName = "Group"

type TaskRequest struct {
	Task     []string `json:"task"`
	Solution string   `json:"solution"`
	ImageURL string   `json:"imageurl"`
}

type LabManualRequest struct {
	Product         string         `json:"product" validate:"required"`
	LabInstructions []string       `json:"labInstructions"`
	Tasks           []*TaskRequest `json:"tasks" validate:"dive,required"`
}

func (r LabManualRequest) ToModel() *model.LabManual {
	tasks := make([]model.Task, 0, len(r.Tasks))
	for _, t := range r.Tasks {
		task := t.Task
		if task == nil {
			task = []string{}
		}
		tasks = append(tasks, model.Task{Task: task, Solution: t.Solution, ImageURL: t.ImageURL})
	}

	instructions := r.LabInstructions
	if instructions == nil {
		instructions = []string{}
	}

	return &model.LabManual{
		ProductRef:      model.ProductRef{Product: r.Product},
		LabInstructions: instructions,
		Tasks:           tasks,
	}
}

type FaqRequest struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

type FaqsRequest struct {
	Product string        `json:"product" validate:"required"`
	Faqs    []*FaqRequest `json:"faqs" validate:"dive,required"`
}

func (r FaqsRequest) ToModel() *model.Faqs {
	faqs := make([]model.Faq, 0, len(r.Faqs))
	for _, f := range r.Faqs {
		faqs = append(faqs, model.Faq{Question: f.Question, Answer: f.Answer})
	}
	return &model.Faqs{
		ProductRef: model.ProductRef{Product: r.Product},
		Faqs:       faqs,
	}
}

type IframeRequest struct {
	Iframe string `json:"iframe" validate:"required"`
}

type VideoGroupRequest struct {
	GroupName   string           `json:"groupName"`
	Description string           `json:"description"`
	Iframes     []*IframeRequest `json:"iframes" validate:"dive,required"`
}

type CourseVideoRequest struct {
	Product string               `json:"product" validate:"required"`
	Groups  []*VideoGroupRequest `json:"groups" validate:"dive,required"`
}

func (r CourseVideoRequest) ToModel() *model.CourseVideo {
	groups := make([]model.VideoGroup, 0, len(r.Groups))
	for _, g := range r.Groups {
		name := g.GroupName
		if name == "" {
			name = defaultGroupName
		}
		iframes := make([]model.Iframe, 0, len(g.Iframes))
		for _, f := range g.Iframes {
			iframes = append(iframes, model.Iframe{Iframe: f.Iframe})
		}
		groups = append(groups, model.VideoGroup{GroupName: name, Description: g.Description, Iframes: iframes})
	}
	return &model.CourseVideo{
		ProductRef: model.ProductRef{Product: r.Product},
		Groups:     groups,
	}
}

type DriveLinkRequest struct {
	Link string `json:"link" validate:"required,weblink"`
}

type CourseMaterialRequest struct {
	Product    string                `json:"product" validate:"required"`
	DriveLinks [][]*DriveLinkRequest `json:"driveLinks" validate:"dive,dive,required"`
}

func (r CourseMaterialRequest) ToModel() *model.CourseMaterial {
	links := make([][]model.DriveLink, 0, len(r.DriveLinks))
	for _, row := range r.DriveLinks {
		converted := make([]model.DriveLink, 0, len(row))
		for _, l := range row {
			converted = append(converted, model.DriveLink{Link: l.Link})
		}
		links = append(links, converted)
	}
	return &model.CourseMaterial{
		ProductRef: model.ProductRef{Product: r.Product},
		DriveLinks: links,
	}
}

type MachineFormRequest struct {
	Product string `json:"product" validate:"required"`
	Machine string `json:"machine" validate:"required"`
	Flag    string `json:"flag" validate:"required"`
	Value   string `json:"value" validate:"required"`
}

func (r MachineFormRequest) ToModel() *model.MachineForm {
	return &model.MachineForm{
		ProductRef: model.ProductRef{Product: r.Product},
		Machine:    r.Machine,
		Flag:       r.Flag,
		Value:      r.Value,
		Answers:    []model.MachineAnswer{},
	}
}

type MachineAnswerRequest struct {
	UserID string `json:"userId" validate:"required"`
	Answer string `json:"answer" validate:"required"`
}

type MachineFormsByProduct struct {
	ProductTitle string                         `json:"productTitle"`
	Forms        []model.MachineForm            `json:"forms"`
	GroupedData  map[string][]model.MachineForm `json:"groupedData"`
}

func (r *LabManualRequest) SetProduct(product string)      { r.Product = product }
func (r *FaqsRequest) SetProduct(product string)           { r.Product = product }
func (r *CourseVideoRequest) SetProduct(product string)    { r.Product = product }
func (r *CourseMaterialRequest) SetProduct(product string) { r.Product = product }
