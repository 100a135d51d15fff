package viewmodels

import (
	"github.com/fieldware/sitecheck/modules/permits/domain/permit"
)

// ActionControl is one interactive control the shell should render. Input
// tells it what to collect: a signature image, a remark, or nothing.
type ActionControl struct {
	Name  string `json:"name"`
	Input string `json:"input"`
}

type PermitDetail struct {
	ID             int64           `json:"id"`
	Number         string          `json:"number"`
	Status         string          `json:"status"`
	WorkDesc       string          `json:"work_description"`
	IssuedBy       string          `json:"issued_by"`
	IssuedAt       string          `json:"issued_at"`
	RejectedRemark string          `json:"rejected_remark,omitempty"`
	Controls       []ActionControl `json:"controls"`
}

func inputFor(name string) string {
	switch name {
	case permit.ActionVerify, permit.ActionClientApprove:
		return "signature"
	case permit.ActionClientReject:
		return "remark"
	default:
		return "none"
	}
}

// PermitToDetail renders exactly one control per recognized action the
// server offered; unrecognized action names are dropped silently. The
// rejection remark is only surfaced on rejected permits.
func PermitToDetail(p *permit.Permit) PermitDetail {
	detail := PermitDetail{
		ID:       p.ID,
		Number:   p.Number,
		Status:   string(p.Status),
		WorkDesc: p.WorkDesc,
		IssuedBy: p.IssuedBy,
		IssuedAt: p.IssuedAt,
		Controls: []ActionControl{},
	}
	if p.Status == permit.StatusClientRejected {
		detail.RejectedRemark = p.RejectedRemark
	}
	for _, action := range p.Actions {
		if !permit.KnownAction(action.Name) {
			continue
		}
		detail.Controls = append(detail.Controls, ActionControl{
			Name:  action.Name,
			Input: inputFor(action.Name),
		})
	}
	return detail
}
