/*
Package main provides the agentscript command line tool.

# Overview

cmd/agentscript is the executable binding of the converter: it reads agent
definition documents (JSON or YAML) from disk, converts them to agent
script text, and optionally writes a post-conversion analysis report. The
core packages stay free of file I/O; everything filesystem-shaped lives
here.

# Subcommands

  - convert  — convert one or more definition files, concurrently
  - detect   — scan definition files for legacy variable placeholders
  - version  — show version information

Build injection: Version, BuildTime and GitCommit are set via ldflags.
*/
package main
