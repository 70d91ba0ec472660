package rxfsm

// Version is the current release of the rxfsm module.
var Version = "0.1.0"
