// Package forms holds the compiled-in checklist form registry. Everything
// here is data: field lists vary per inspection type, the workflow that
// runs them does not.
package forms

import (
	"github.com/fieldware/sitecheck/modules/checklists/domain/checklist"
	"github.com/fieldware/sitecheck/modules/checklists/domain/form"
)

var definitions = []form.Definition{
	{
		Code:         "concrete_pour",
		Title:        "Concrete Pour Card",
		Endpoint:     "/inspections/concrete-pours",
		ListPath:     "/checklists/concrete_pour",
		WitnessCount: 3,
		Schema: checklist.Schema{
			{
				Key: "prep",
				Items: []checklist.Item{
					{Key: "formwork_clean", Schema: checklist.ItemSchema{Label: "Formwork cleaned and oiled", Choices: checklist.YesNoNA, Required: true}},
					{Key: "rebar_approved", Schema: checklist.ItemSchema{Label: "Reinforcement inspected and approved", Choices: checklist.YesNoNA, Required: true}},
					{Key: "embeds_fixed", Schema: checklist.ItemSchema{Label: "Embedded items fixed and protected", Choices: checklist.YesNoNA, Required: true}},
					{Key: "access_safe", Schema: checklist.ItemSchema{Label: "Safe access and egress provided", Choices: checklist.YesNo, Required: false}},
				},
			},
			{
				Key: "pour",
				Items: []checklist.Item{
					{Key: "slump_test", Schema: checklist.ItemSchema{Label: "Slump test performed", Choices: checklist.YesNoNA, Required: true}},
					{Key: "cubes_taken", Schema: checklist.ItemSchema{Label: "Test cubes taken and labelled", Choices: checklist.YesNoNA, Required: true}},
					{Key: "vibrator_used", Schema: checklist.ItemSchema{Label: "Concrete compacted with vibrator", Choices: checklist.YesNo, Required: false}},
				},
			},
			{
				Key: "post_pour",
				Items: []checklist.Item{
					{Key: "curing_arranged", Schema: checklist.ItemSchema{Label: "Curing arrangement in place", Choices: checklist.YesNoNA, Required: true}},
				},
			},
		},
	},
	{
		Code:     "earthing",
		Title:    "Earthing Installation",
		Endpoint: "/inspections/earthings",
		ListPath: "/checklists/earthing",
		Schema: checklist.Schema{
			{
				Key: "installation",
				Items: []checklist.Item{
					{Key: "pit_depth", Schema: checklist.ItemSchema{Label: "Earth pit depth as per drawing", Choices: checklist.YesNoNA, Required: true}},
					{Key: "strip_continuous", Schema: checklist.ItemSchema{Label: "Earthing strip continuous and clamped", Choices: checklist.YesNoNA, Required: true}},
					{Key: "joints_welded", Schema: checklist.ItemSchema{Label: "Joints welded and bitumen coated", Choices: checklist.YesNoNA, Required: true}},
				},
			},
			{
				Key: "testing",
				Items: []checklist.Item{
					{Key: "resistance_measured", Schema: checklist.ItemSchema{Label: "Earth resistance measured and recorded", Choices: checklist.YesNo, Required: true}},
					{Key: "megger_calibrated", Schema: checklist.ItemSchema{Label: "Test instrument calibration valid", Choices: checklist.YesNoNA, Required: false}},
				},
			},
		},
	},
	{
		Code:     "fencing",
		Title:    "Boundary Fencing",
		Endpoint: "/inspections/fencings",
		ListPath: "/checklists/fencing",
		Schema: checklist.Schema{
			{
				Key: "setout",
				Items: []checklist.Item{
					{Key: "alignment_ok", Schema: checklist.ItemSchema{Label: "Fence alignment as per layout", Choices: checklist.YesNoNA, Required: true}},
					{Key: "post_spacing", Schema: checklist.ItemSchema{Label: "Post spacing within tolerance", Choices: checklist.YesNoNA, Required: true}},
				},
			},
			{
				Key: "erection",
				Items: []checklist.Item{
					{Key: "concrete_footing", Schema: checklist.ItemSchema{Label: "Post footings concreted", Choices: checklist.YesNoNA, Required: true}},
					{Key: "mesh_tensioned", Schema: checklist.ItemSchema{Label: "Chain-link mesh tensioned", Choices: checklist.YesNo, Required: false}},
					{Key: "gates_operational", Schema: checklist.ItemSchema{Label: "Gates hung and operational", Choices: checklist.YesNoNA, Required: false}},
				},
			},
		},
	},
	{
		Code:         "transformer",
		Title:        "Transformer Installation",
		Endpoint:     "/inspections/transformers",
		ListPath:     "/checklists/transformer",
		WitnessCount: 3,
		Schema: checklist.Schema{
			{
				Key: "mechanical",
				Items: []checklist.Item{
					{Key: "foundation_level", Schema: checklist.ItemSchema{Label: "Foundation level and anchor bolts torqued", Choices: checklist.YesNoNA, Required: true}},
					{Key: "oil_level", Schema: checklist.ItemSchema{Label: "Oil level within marks, no leaks", Choices: checklist.YesNoNA, Required: true}},
					{Key: "silica_gel", Schema: checklist.ItemSchema{Label: "Breather silica gel blue", Choices: checklist.YesNo, Required: false}},
				},
			},
			{
				Key: "electrical",
				Items: []checklist.Item{
					{Key: "ir_values", Schema: checklist.ItemSchema{Label: "Insulation resistance values recorded", Choices: checklist.YesNoNA, Required: true}},
					{Key: "tap_changer", Schema: checklist.ItemSchema{Label: "Tap changer operation checked", Choices: checklist.YesNoNA, Required: true}},
					{Key: "neutral_earthed", Schema: checklist.ItemSchema{Label: "Neutral earthed at two points", Choices: checklist.YesNoNA, Required: true}},
				},
			},
		},
	},
	{
		Code:     "pv_modules",
		Title:    "PV Module Installation",
		Endpoint: "/inspections/pv-modules",
		ListPath: "/checklists/pv_modules",
		Schema: checklist.Schema{
			{
				Key: "mounting",
				Items: []checklist.Item{
					{Key: "torque_marked", Schema: checklist.ItemSchema{Label: "Clamp bolts torqued and marked", Choices: checklist.YesNoNA, Required: true}},
					{Key: "row_alignment", Schema: checklist.ItemSchema{Label: "Module rows aligned", Choices: checklist.YesNoNA, Required: true}},
					{Key: "no_damage", Schema: checklist.ItemSchema{Label: "No cell cracks or glass damage", Choices: checklist.YesNo, Required: true}},
				},
			},
			{
				Key: "wiring",
				Items: []checklist.Item{
					{Key: "connectors_seated", Schema: checklist.ItemSchema{Label: "String connectors fully seated", Choices: checklist.YesNoNA, Required: true}},
					{Key: "cables_dressed", Schema: checklist.ItemSchema{Label: "DC cables dressed clear of edges", Choices: checklist.YesNoNA, Required: false}},
					{Key: "polarity_checked", Schema: checklist.ItemSchema{Label: "String polarity checked", Choices: checklist.YesNo, Required: true}},
				},
			},
		},
	},
	{
		Code:         "permit_to_work",
		Title:        "Permit To Work Issuance",
		Endpoint:     "/permits",
		ListPath:     "/permits",
		WitnessCount: 3,
		Schema: checklist.Schema{
			{
				Key: "controls",
				Items: []checklist.Item{
					{Key: "isolation_done", Schema: checklist.ItemSchema{Label: "Energy isolation completed and tagged", Choices: checklist.YesNoNA, Required: true}},
					{Key: "area_barricaded", Schema: checklist.ItemSchema{Label: "Work area barricaded and signed", Choices: checklist.YesNoNA, Required: true}},
					{Key: "gas_test", Schema: checklist.ItemSchema{Label: "Gas test carried out where applicable", Choices: checklist.YesNoNA, Required: true}},
				},
			},
			{
				Key: "personnel",
				Items: []checklist.Item{
					{Key: "crew_briefed", Schema: checklist.ItemSchema{Label: "Work crew briefed on hazards", Choices: checklist.YesNo, Required: true}},
					{Key: "ppe_verified", Schema: checklist.ItemSchema{Label: "Task-specific PPE verified", Choices: checklist.YesNoNA, Required: true}},
				},
			},
		},
	},
	{
		Code:     "worker_record",
		Title:    "Worker Record",
		Endpoint: "/workers",
		ListPath: "/workers",
		Schema: checklist.Schema{
			{
				Key: "induction",
				Items: []checklist.Item{
					{Key: "id_verified", Schema: checklist.ItemSchema{Label: "Identity document verified", Choices: checklist.YesNo, Required: true}},
					{Key: "medical_fit", Schema: checklist.ItemSchema{Label: "Medical fitness certificate valid", Choices: checklist.YesNoNA, Required: true}},
					{Key: "induction_done", Schema: checklist.ItemSchema{Label: "Site induction completed", Choices: checklist.YesNo, Required: true}},
				},
			},
		},
	},
	{
		Code:     "safety_observation",
		Title:    "Safety Observation",
		Endpoint: "/observations",
		ListPath: "/observations",
		Schema: checklist.Schema{
			{
				Key: "observation",
				Items: []checklist.Item{
					{Key: "unsafe_act", Schema: checklist.ItemSchema{Label: "Unsafe act observed", Choices: checklist.YesNo, Required: true}},
					{Key: "unsafe_condition", Schema: checklist.ItemSchema{Label: "Unsafe condition observed", Choices: checklist.YesNo, Required: true}},
					{Key: "stopped_work", Schema: checklist.ItemSchema{Label: "Work stopped pending correction", Choices: checklist.YesNoNA, Required: false}},
				},
			},
		},
	},
	{
		Code:     "manpower_log",
		Title:    "Daily Manpower Log",
		Endpoint: "/manpower",
		ListPath: "/manpower",
		Schema: checklist.Schema{
			{
				Key: "headcount",
				Items: []checklist.Item{
					{Key: "count_reconciled", Schema: checklist.ItemSchema{Label: "Headcount reconciled with gate register", Choices: checklist.YesNo, Required: true}},
					{Key: "subcontractors_reported", Schema: checklist.ItemSchema{Label: "Subcontractor counts reported", Choices: checklist.YesNoNA, Required: false}},
				},
			},
		},
	},
}

// All returns the registered forms in declaration order.
func All() []form.Definition {
	out := make([]form.Definition, len(definitions))
	copy(out, definitions)
	return out
}

// ByCode looks up one form definition.
func ByCode(code string) (form.Definition, bool) {
	for _, def := range definitions {
		if def.Code == code {
			return def, true
		}
	}
	return form.Definition{}, false
}
