// Package workspace ties a directory, its mets.xml manifest and a Resolver
// together. It downloads input files on first use, registers output files
// under <dir>/<group>/<basename>, and persists the manifest atomically.
package workspace
