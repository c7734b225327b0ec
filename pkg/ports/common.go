// Package ports provides the fixed probe port list and service names.
package ports

// Common is the default set of commonly scanned TCP ports, ascending.
var Common = []int{
	21, 22, 23, 25, 53, 80, 110, 115, 135, 139,
	143, 443, 445, 1433, 3306, 3389, 5060, 5900, 8080, 8443,
}

// serviceNames maps well-known ports to their IANA service names.
var serviceNames = map[int]string{
	21:   "ftp",
	22:   "ssh",
	23:   "telnet",
	25:   "smtp",
	53:   "domain",
	80:   "http",
	110:  "pop3",
	115:  "sftp",
	135:  "epmap",
	139:  "netbios-ssn",
	143:  "imap",
	443:  "https",
	445:  "microsoft-ds",
	1433: "ms-sql-s",
	3306: "mysql",
	3389: "ms-wbt-server",
	5060: "sip",
	5900: "rfb",
	8080: "http-alt",
	8443: "pcsync-https",
}

// ServiceName returns the well-known service name for port, or "unknown".
// This is a best-effort label; it never fails a probe.
func ServiceName(port int) string {
	if name, ok := serviceNames[port]; ok {
		return name
	}
	return "unknown"
}
