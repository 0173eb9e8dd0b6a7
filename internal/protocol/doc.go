// Package protocol encodes and decodes the JSON documents the keypad
// exchanges with the alarm controller over MQTT.
//
// # Inbound commands
//
// Commands arrive on the command topic:
//
//	{"command": "lock", "duration": 30}
//	{"command": "lock", "duration": "30"}
//	{"command": "lock"}
//
// duration is in seconds and may be a number or a numeric string. A missing,
// negative or unparsable duration leaves the default to the keypad. A
// duration of 0 ends an active lock on the next loop iteration.
//
// # Outbound state
//
// The state document is published retained on the state topic:
//
//	{"ip":"192.168.1.40","mac":"AA:BB:CC:DD:EE:FF","rssi":"-61",
//	 "uptime":"0T01:02:03.004","version":"v1.0.0"}
//
// Codes are published as the bare digit string on the code topic and are
// not JSON encoded.
package protocol
