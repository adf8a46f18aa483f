// Package sevenzip builds and runs the 7-Zip extraction command and maps its
// exit code to an error.
//
// Exit codes follow https://documentation.help/7-Zip/exit_codes.htm: 0 and 1
// (warning) are success; 2, 7, 8 and 255 are documented failures; anything
// else is an unknown failure. No failure is retried.
package sevenzip
