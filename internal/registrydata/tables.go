package registrydata

// DefaultWhoisReferralServer answers for any TLD without a dedicated entry in
// the static WHOIS table.
const DefaultWhoisReferralServer = "whois.iana.org"

// compoundSuffixes are two-label public suffixes treated as atomic registry
// keys. They take precedence over the bare last label.
var compoundSuffixes = map[string]struct{}{
	"co.uk": {}, "org.uk": {}, "me.uk": {}, "net.uk": {}, "ac.uk": {}, "gov.uk": {},
	"com.au": {}, "net.au": {}, "org.au": {}, "id.au": {},
	"co.nz": {}, "net.nz": {}, "org.nz": {},
	"co.za": {}, "org.za": {}, "web.za": {},
	"co.jp": {}, "or.jp": {}, "ne.jp": {}, "ac.jp": {}, "go.jp": {},
	"com.br": {}, "net.br": {}, "org.br": {},
	"com.cn": {}, "net.cn": {}, "org.cn": {},
	"com.mx": {}, "org.mx": {},
	"com.ar": {}, "com.tr": {}, "com.tw": {}, "com.hk": {}, "com.sg": {},
	"com.my": {}, "co.id": {}, "co.th": {}, "co.kr": {}, "co.in": {},
	"net.in": {}, "org.in": {}, "com.ua": {}, "com.pl": {},
}

// staticRDAPBases maps registry keys to RDAP base URLs, trailing-slash
// terminated. A snapshot of the major gTLD/ccTLD services; anything missing
// here is resolved through the IANA bootstrap.
var staticRDAPBases = map[string]string{
	"com": "https://rdap.verisign.com/com/v1/",
	"net": "https://rdap.verisign.com/net/v1/",
	"cc":  "https://rdap.verisign.com/cc/v1/",
	"tv":  "https://rdap.verisign.com/tv/v1/",
	"org": "https://rdap.publicinterestregistry.org/rdap/",

	"info": "https://rdap.identitydigital.services/rdap/",
	"biz":  "https://rdap.identitydigital.services/rdap/",
	"io":   "https://rdap.identitydigital.services/rdap/",
	"sh":   "https://rdap.identitydigital.services/rdap/",
	"ac":   "https://rdap.identitydigital.services/rdap/",
	"mobi": "https://rdap.identitydigital.services/rdap/",

	"xyz":     "https://rdap.centralnic.com/xyz/",
	"site":    "https://rdap.centralnic.com/site/",
	"online":  "https://rdap.centralnic.com/online/",
	"tech":    "https://rdap.centralnic.com/tech/",
	"store":   "https://rdap.centralnic.com/store/",
	"fun":     "https://rdap.centralnic.com/fun/",
	"space":   "https://rdap.centralnic.com/space/",
	"website": "https://rdap.centralnic.com/website/",
	"press":   "https://rdap.centralnic.com/press/",
	"host":    "https://rdap.centralnic.com/host/",

	"app":  "https://pubapi.registry.google/rdap/",
	"dev":  "https://pubapi.registry.google/rdap/",
	"page": "https://pubapi.registry.google/rdap/",

	"me": "https://rdap.nic.me/",
	"co": "https://rdap.nic.co/",
	"us": "https://rdap.nic.us/",
	"ai": "https://rdap.nic.ai/",
	"gg": "https://rdap.nic.gg/",
	"so": "https://rdap.nic.so/",
	"ly": "https://rdap.nic.ly/",

	"uk":     "https://rdap.nominet.uk/uk/",
	"co.uk":  "https://rdap.nominet.uk/uk/",
	"org.uk": "https://rdap.nominet.uk/uk/",
	"me.uk":  "https://rdap.nominet.uk/uk/",

	"de":     "https://rdap.denic.de/",
	"fr":     "https://rdap.nic.fr/",
	"nl":     "https://rdap.sidn.nl/",
	"eu":     "https://rdap.eurid.eu/",
	"ca":     "https://rdap.ca.fury.ca/rdap/",
	"au":     "https://rdap.auda.org.au/",
	"com.au": "https://rdap.auda.org.au/",
	"nz":     "https://rdap.srs.net.nz/",
	"br":     "https://rdap.registro.br/",
	"in":     "https://rdap.registry.in/",
	"cn":     "https://rdap.cnnic.cn/",
}

// staticWhoisServers maps registry keys to WHOIS server hostnames. A registry
// key missing here falls back to DefaultWhoisReferralServer; there is no
// network bootstrap on the WHOIS side.
var staticWhoisServers = map[string]string{
	"com":  "whois.verisign-grs.com",
	"net":  "whois.verisign-grs.com",
	"cc":   "ccwhois.verisign-grs.com",
	"tv":   "tvwhois.verisign-grs.com",
	"org":  "whois.pir.org",
	"info": "whois.nic.info",
	"biz":  "whois.nic.biz",
	"mobi": "whois.nic.mobi",

	"io": "whois.nic.io",
	"sh": "whois.nic.sh",
	"ac": "whois.nic.ac",
	"me": "whois.nic.me",
	"co": "whois.nic.co",
	"us": "whois.nic.us",
	"ai": "whois.nic.ai",
	"gg": "whois.gg",

	"xyz":     "whois.nic.xyz",
	"site":    "whois.nic.site",
	"online":  "whois.nic.online",
	"tech":    "whois.nic.tech",
	"store":   "whois.nic.store",
	"space":   "whois.nic.space",
	"website": "whois.nic.website",

	"app":  "whois.nic.google",
	"dev":  "whois.nic.google",
	"page": "whois.nic.google",

	"uk":     "whois.nic.uk",
	"co.uk":  "whois.nic.uk",
	"org.uk": "whois.nic.uk",
	"me.uk":  "whois.nic.uk",
	"de":     "whois.denic.de",
	"fr":     "whois.nic.fr",
	"nl":     "whois.domain-registry.nl",
	"eu":     "whois.eu",
	"ca":     "whois.cira.ca",
	"au":     "whois.auda.org.au",
	"com.au": "whois.auda.org.au",
	"net.au": "whois.auda.org.au",
	"nz":     "whois.srs.net.nz",
	"co.nz":  "whois.srs.net.nz",
	"jp":     "whois.jprs.jp",
	"co.jp":  "whois.jprs.jp",
	"cn":     "whois.cnnic.cn",
	"com.cn": "whois.cnnic.cn",
	"ru":     "whois.tcinet.ru",
	"br":     "whois.registro.br",
	"com.br": "whois.registro.br",
	"in":     "whois.registry.in",
	"co.in":  "whois.registry.in",
	"kr":     "whois.kr",
	"co.kr":  "whois.kr",
	"mx":     "whois.mx",
	"com.mx": "whois.mx",
	"ch":     "whois.nic.ch",
	"it":     "whois.nic.it",
	"es":     "whois.nic.es",
	"se":     "whois.iis.se",
	"no":     "whois.norid.no",
	"pl":     "whois.dns.pl",
	"com.pl": "whois.dns.pl",
}
