// Command trialgen generates counterbalanced trial lists for same/different
// image-matching experiments. See `trialgen --help` for the command surface.
package main
