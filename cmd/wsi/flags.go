package main

import "flag"

// flagSet builds the command-line flag set. Kept separate from main so the
// "flag" import doesn't collide with a local variable named flag.
func flagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("wsi", flag.ExitOnError)
	fs.StringVar(&fileName, "f", "", "read program from `file` instead of standard input")
	fs.BoolVar(&asmOnly, "asm", false, "disassemble the program and exit without executing it")
	fs.BoolVar(&verbose, "v", false, "print progress banners even when reading from standard input")
	fs.BoolVar(&dump, "dump", false, "print the data stack to standard error on exit")
	return fs
}
