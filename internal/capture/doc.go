// Package capture runs a command and records its output to disk.
//
// Each run gets its own output directory holding:
//
//	devtriage_meta.json  written before the command starts
//	stdout.txt           captured standard output
//	stderr.txt           captured standard error
//	meta.json            command, timestamps, exit code, run ID and stderr tail
//
// The default directory is <base>/<UTC timestamp>, where the timestamp uses
// the compact YYYYMMDDTHHMMSSZ form.
package capture
