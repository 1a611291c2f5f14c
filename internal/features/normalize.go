package features

import (
	"futured/internal/model"
)

// FeatureRecord is the flat extraction of one SurveyDocument. Every
// schema feature is present as a key; absent source fields carry nil,
// never a missing key.
type FeatureRecord map[string]interface{}

// EncodedFeatureRecord is a FeatureRecord after all values have been
// resolved to numbers.
type EncodedFeatureRecord map[string]float64

// FeatureSource locates one feature inside a SurveyDocument.
type FeatureSource struct {
	Name    string
	Section model.Section
	Field   string
}

// Schema fixes the feature set and its natural column order. The order
// doubles as the degraded-mode column signature when a classifier
// artifact carries none.
var Schema = []FeatureSource{
	{Name: "trabaja", Section: model.SectionSocioeconomic, Field: "trabaja"},
	{Name: "ingreso_mensual", Section: model.SectionSocioeconomic, Field: "ingreso_mensual"},
	{Name: "padecimiento_cronico", Section: model.SectionHealth, Field: "padecimiento_cronico"},
	{Name: "atencion_psicologica", Section: model.SectionHealth, Field: "atencion_psicologica"},
	{Name: "horas_sueno", Section: model.SectionHealth, Field: "horas_sueno"},
	{Name: "alimentacion", Section: model.SectionHealth, Field: "alimentacion"},
	{Name: "materias_reprobadas", Section: model.SectionAcademic, Field: "materias_reprobadas"},
	{Name: "promedio_previo", Section: model.SectionAcademic, Field: "promedio_previo"},
	{Name: "motivacion", Section: model.SectionAcademic, Field: "motivacion"},
	{Name: "dificultad_estudio", Section: model.SectionAcademic, Field: "dificultad_estudio"},
	{Name: "expectativa_terminar", Section: model.SectionAcademic, Field: "expectativa_terminar"},
}

// FeatureNames returns the schema's feature names in natural order.
func FeatureNames() []string {
	names := make([]string, len(Schema))
	for i, src := range Schema {
		names[i] = src.Name
	}
	return names
}

// Normalize extracts the schema features from a survey document. Missing
// sections and fields resolve to nil values; identity fields stay on the
// document and are not part of the record. Total over any input shape,
// including a nil document.
func Normalize(doc *model.SurveyDocument) FeatureRecord {
	rec := make(FeatureRecord, len(Schema))
	for _, src := range Schema {
		if doc == nil {
			rec[src.Name] = nil
			continue
		}
		rec[src.Name] = lookupField(doc.SectionMap(src.Section), src.Field)
	}
	return rec
}

// lookupField is the optional nested access: a nil section or absent
// field yields nil instead of an error.
func lookupField(section map[string]interface{}, field string) interface{} {
	if section == nil {
		return nil
	}
	v, ok := section[field]
	if !ok {
		return nil
	}
	return v
}
