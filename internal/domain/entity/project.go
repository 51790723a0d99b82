package entity

import "time"

// SubProject is a billable sub-category within a project.
type SubProject struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// Project is a bookable work category that timesheet rows reference.
type Project struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Code        string       `json:"code"`
	SubProjects []SubProject `json:"sub_projects"`
	CreatedAt   time.Time    `json:"created_at"`
}
