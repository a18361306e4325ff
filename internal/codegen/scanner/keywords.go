package scanner

// Keyword selects which generator handles a tag.
type Keyword string

const (
	KeywordInitSync             Keyword = "init_sync"
	KeywordStartSync            Keyword = "start_sync"
	KeywordStopSync             Keyword = "stop_sync"
	KeywordMeasureTimestamp     Keyword = "measure_timestamp"
	KeywordInitializeBenchmark  Keyword = "initialize_benchmark"
	KeywordCleanupBenchmark     Keyword = "cleanup_benchmark"
	KeywordCleanupSync          Keyword = "cleanup_sync"
	KeywordPrintResult          Keyword = "print_result"
	KeywordStartMeasurementLoop Keyword = "start_measurement_loop"
	KeywordStopMeasurementLoop  Keyword = "stop_measurement_loop"
	KeywordInitializeTimestamps Keyword = "initialize_timestamps"
	KeywordDeclareVariables     Keyword = "declare_variables"
	KeywordCleanupVariables     Keyword = "cleanup_variables"
	KeywordAddIncludes          Keyword = "add_includes"
	KeywordSet                  Keyword = "set"
	KeywordGlobal               Keyword = "global"
)

// Marker introduces a tag inside a C line comment.
const Marker = "//@"

// keywords maps every accepted spelling to its canonical keyword.
// The short forms are what older annotated sources use.
var keywords = map[string]Keyword{
	string(KeywordInitSync):             KeywordInitSync,
	string(KeywordStartSync):            KeywordStartSync,
	string(KeywordStopSync):             KeywordStopSync,
	string(KeywordMeasureTimestamp):     KeywordMeasureTimestamp,
	string(KeywordInitializeBenchmark):  KeywordInitializeBenchmark,
	"initialize_bench":                  KeywordInitializeBenchmark,
	string(KeywordCleanupBenchmark):     KeywordCleanupBenchmark,
	"cleanup_bench":                     KeywordCleanupBenchmark,
	string(KeywordCleanupSync):          KeywordCleanupSync,
	string(KeywordPrintResult):          KeywordPrintResult,
	"print_runtime_array":               KeywordPrintResult,
	string(KeywordStartMeasurementLoop): KeywordStartMeasurementLoop,
	string(KeywordStopMeasurementLoop):  KeywordStopMeasurementLoop,
	string(KeywordInitializeTimestamps): KeywordInitializeTimestamps,
	string(KeywordDeclareVariables):     KeywordDeclareVariables,
	string(KeywordCleanupVariables):     KeywordCleanupVariables,
	string(KeywordAddIncludes):          KeywordAddIncludes,
	string(KeywordSet):                  KeywordSet,
	string(KeywordGlobal):               KeywordGlobal,
}

// LookupKeyword resolves a spelling found in source to its canonical keyword.
func LookupKeyword(name string) (Keyword, bool) {
	kw, ok := keywords[name]
	return kw, ok
}

// Keywords returns the canonical keywords in registry order.
func Keywords() []Keyword {
	return []Keyword{
		KeywordInitSync,
		KeywordStartSync,
		KeywordStopSync,
		KeywordMeasureTimestamp,
		KeywordInitializeBenchmark,
		KeywordCleanupBenchmark,
		KeywordCleanupSync,
		KeywordPrintResult,
		KeywordStartMeasurementLoop,
		KeywordStopMeasurementLoop,
		KeywordInitializeTimestamps,
		KeywordDeclareVariables,
		KeywordCleanupVariables,
		KeywordAddIncludes,
		KeywordSet,
		KeywordGlobal,
	}
}
