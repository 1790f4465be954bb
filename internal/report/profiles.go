// Package report orchestrates a report run: load the export, pivot it, and
// persist the result. The two built-in profiles mirror the deployed
// category and services reports; their vocabularies are deployment
// constants, not read from the input file.
package report

import (
	"funnelreport/internal/pivot"
)

// Profile is the static configuration of one report variant.
type Profile struct {
	// Name identifies the profile in logs and progress output.
	Name string
	// SourceSheet is the worksheet the export is read from.
	SourceSheet string
	// OutputSheet is the worksheet the report is written to.
	OutputSheet string
	// Spec parameterizes the pivot transform.
	Spec pivot.Spec
}

// metricOrder is the fixed output row order shared by both report variants.
var metricOrder = []string{
	"[TopLine_Revenue]",
	"[Base_usuarios]",
	"[v_Activaciones_Revenue]",
	"[v__Activaciones]",
	"[v_Renovaciones_Revenue]",
	"[v_Renovaciones]",
	"[v_Rfnds]",
	"[Rfnds_U_U]",
	"[Total_Refnds]",
	"[v__Churn_from_act2]",
	"[v__Chur_prev_base]",
	"[v__Churn]",
	"[v_Auto_Ref]",
	"[Auto_Ref_UU]",
	"[Automatic_Refund_Amount]",
	"[v_Reg_Ref]",
	"[Reg_Ref_UU]",
	"[Reg_Refund_Amount]",
}

// categoryOrder is the fixed column order of the category report.
var categoryOrder = []string{
	"Beauty and Health",
	"Free Time",
	"Games",
	"Education",
	"Images",
	"Kids",
	"Light",
	"Music",
	"News",
	"Sports",
}

// serviceOrder is the fixed column order of the services report.
var serviceOrder = []string{
	"IntimaX",
	"Rincon Prohibido",
	"The Tourist",
	"El Mundo Al Revés",
	"Noticias Emocion",
	"Deportes emocion",
	"Cuidate Mejor",
	"Sexducate con LB",
	"Yo Mujer y +",
	"Slow Life",
	"Movistar Juegos",
	"Kids Play",
	"Smile & Learn",
}

// CategoryKeyColumn is the input column holding the category name.
const CategoryKeyColumn = "Master_CPC[TME Category]"

// ServiceKeyColumn is the input column holding the service name.
const ServiceKeyColumn = "Master_CPC[Service Name]"

// CategoryProfile returns the category report configuration: ten categories
// plus the "Edu+Img" sum column placed right after Images.
func CategoryProfile() Profile {
	return Profile{
		Name:        "category",
		SourceSheet: "Export",
		OutputSheet: "Category Report",
		Spec: pivot.Spec{
			KeyColumn:   CategoryKeyColumn,
			RowLabel:    CategoryKeyColumn,
			MetricOrder: metricOrder,
			EntityOrder: categoryOrder,
			Derived: &pivot.DerivedColumn{
				Name:        "Edu+Img",
				SourceA:     "Education",
				SourceB:     "Images",
				InsertAfter: "Images",
			},
		},
	}
}

// ServicesProfile returns the services report configuration: thirteen
// services, no derived column.
func ServicesProfile() Profile {
	return Profile{
		Name:        "services",
		SourceSheet: "Export",
		OutputSheet: "Services Report",
		Spec: pivot.Spec{
			KeyColumn:   ServiceKeyColumn,
			RowLabel:    ServiceKeyColumn,
			MetricOrder: metricOrder,
			EntityOrder: serviceOrder,
		},
	}
}
