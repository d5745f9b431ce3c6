// Package core holds the small vocabulary shared by the lint engine, the
// rule catalog and the command line: severities and rule metadata.
//
// core imports only the standard library.
package core
