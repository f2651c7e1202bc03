package inventory

// Default column names of the inventory CSV layout.
const (
	ColumnServiceName   = "ApplicationService"
	ColumnIdentifier    = "AppCode"
	ColumnSeverityLabel = "CompositeScore"
	ColumnAssetClass    = "Class"

	ColumnOccurrenceCount  = "TotalInfrastructure"
	ColumnSeverityWeight   = "CompositeScoreNumber"
	ColumnRiskScore        = "CompositeRiskScore"
	ColumnRiskSharePercent = "CompositeRiskScorePercent"
	ColumnRank             = "Rank"
)

// Columns names the raw row keys that hold each input field.
type Columns struct {
	ServiceName   string `yaml:"service_name"`
	Identifier    string `yaml:"identifier"`
	SeverityLabel string `yaml:"severity_label"`
	AssetClass    string `yaml:"asset_class"`
}

// DefaultColumns returns the standard inventory header names.
func DefaultColumns() Columns {
	return Columns{
		ServiceName:   ColumnServiceName,
		Identifier:    ColumnIdentifier,
		SeverityLabel: ColumnSeverityLabel,
		AssetClass:    ColumnAssetClass,
	}
}

// WithDefaults fills any unset column name with its default.
func (c Columns) WithDefaults() Columns {
	d := DefaultColumns()
	if c.ServiceName == "" {
		c.ServiceName = d.ServiceName
	}
	if c.Identifier == "" {
		c.Identifier = d.Identifier
	}
	if c.SeverityLabel == "" {
		c.SeverityLabel = d.SeverityLabel
	}
	if c.AssetClass == "" {
		c.AssetClass = d.AssetClass
	}
	return c
}

// Record builds a record from a raw row. Missing keys become empty strings.
func (c Columns) Record(row Row) Record {
	return Record{
		ServiceName:   row[c.ServiceName],
		Identifier:    row[c.Identifier],
		SeverityLabel: row[c.SeverityLabel],
		AssetClass:    row[c.AssetClass],
	}
}

// Records converts raw rows in order.
func (c Columns) Records(rows []Row) []Record {
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, c.Record(row))
	}
	return records
}
