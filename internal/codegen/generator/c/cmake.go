package cgen

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"text/template"
)

// BinaryName is the executable built from the generated sources.
const BinaryName = "reprompibench"

var cmakeTmpl = template.Must(template.New("cmake").Parse(`# Generated by benchgen {{.Version}}

cmake_minimum_required(VERSION 2.6)

list(APPEND CMAKE_MODULE_PATH "${CMAKE_SOURCE_DIR}/cmake_modules/")

project(gen_code_reproMPIbench)

set(CMAKE_RUNTIME_OUTPUT_DIRECTORY "${CMAKE_BINARY_DIR}/bin")

set(INCLUDE_PLATFORM_CONFIG_FILE "${CMAKE_SOURCE_DIR}/platform_files/default.cmake"
    CACHE STRING "Configure project to use a specific platform file")
include(${INCLUDE_PLATFORM_CONFIG_FILE})

set(REPRO_MPI_BENCHMARK_DIR "" CACHE STRING "Path to the reproMPIbench directory")
if(NOT EXISTS ${REPRO_MPI_BENCHMARK_DIR})
    message(FATAL_ERROR "Please specify the path to the ReproMPI benchmark directory")
endif(NOT EXISTS ${REPRO_MPI_BENCHMARK_DIR})

find_package(GSL REQUIRED)

if (GSL_INCLUDE_DIR)
message (STATUS "GSL INCLUDES: ${GSL_INCLUDE_DIR}")
else(GSL_INCLUDE_DIR)
message (FATAL_ERROR "GSL libraries not found.")
endif(GSL_INCLUDE_DIR)

set(REPRO_MPI_BENCHMARK_LIB ${REPRO_MPI_BENCHMARK_DIR}/lib)
set(REPRO_MPI_BENCHMARK_INCLUDE ${REPRO_MPI_BENCHMARK_DIR}/include)

SET(SRC_DIR {{.SrcDir}})
add_executable({{.Binary}}
{{range .Sources}}${SRC_DIR}/{{.}}
{{end}})

INCLUDE_DIRECTORIES(${PROJECT_SOURCE_DIR}/src ${REPRO_MPI_BENCHMARK_INCLUDE})
TARGET_LINK_LIBRARIES({{.Binary}} ${REPRO_MPI_BENCHMARK_LIB}/libreproMPIbench.${LIBRARY_SUFFIX} ${MPI_LIBRARIES} ${GSL_LIBRARIES})
`))

// GenerateCMake writes outDir/CMakeLists.txt building every source under srcDir.
// Sources are paths relative to srcDir.
func GenerateCMake(logger *slog.Logger, outDir, srcDir, version string, sources []string) error {
	sorted := append([]string(nil), sources...)
	sort.Strings(sorted)

	data := struct {
		Version string
		SrcDir  string
		Binary  string
		Sources []string
	}{
		Version: version,
		SrcDir:  srcDir,
		Binary:  BinaryName,
		Sources: sorted,
	}

	var buf bytes.Buffer
	if err := cmakeTmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("execute CMake template: %w", err)
	}

	out := filepath.Join(outDir, "CMakeLists.txt")
	if err := os.WriteFile(out, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write CMakeLists.txt: %w", err)
	}
	logger.Info("Generated CMakeLists.txt", "file", out, "sources", len(sorted))
	return nil
}
