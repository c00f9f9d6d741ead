// Package cmd provides the command-line interface implementation for mixcreator.
//
// It uses the Cobra library for command structure and Fang for styling.
// The commands are:
//   - build: workbook to text resources to SUBTITLES.MIX
//   - pack: archive existing files
//   - validate: archive layout and text resource checks
//   - inspect: decode the quotes of one resource
//   - hash: archive ids of file names
//   - mount: FUSE view of an archive
//
// Each command lives in its own file with a constructor returning a
// *cobra.Command; NewRootCmd wires them together.
package cmd
