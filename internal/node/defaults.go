package node

// DefaultNodes is the built-in list of public mainnet daemons.
//
//nolint:gochecknoglobals // Fixed node list
var DefaultNodes = []string{
	"xmr.agor.ist:18089/mainnet/agor.ist",
	"xmr-de.boldsuck.org:18081/mainnet/boldsuck.org",
	"6dsdenp6vjkvqzy4wzsnzn6wixkdzihx3khiumyzieauxuxslmcaeiad.onion:18081/mainnet/boldsuck.onion",
	"xmr-node.cakewallet.com:18081/mainnet/cakewallet.com",
	"monero.ds-jetzt.de:18089/mainnet/ds-jetzt.de",
	"qvlr4w7yhnjrdg3txa72jwtpnjn4ezsrivzvocbnvpfbdo342fahhoad.onion:18089/mainnet/ds-jetzt.onion",
	"node.monerodevs.org:18089/mainnet/monerodevs.org",
	"nodex.monerujo.io:18081/mainnet/monerujo.io",
	"monerujods7mbghwe6cobdr6ujih6c22zu5rl7zshmizz2udf7v7fsad.onion:18081/mainnet/monerujo.onion",
	"node.sethforprivacy.com:18089/mainnet/sethforprivacy.com",
	"sfpp2p7wnfjv3lrvfan4jmmkvhnbsbimpa3cqyuf7nt6zd24xhcqcsyd.onion/mainnet/sethforprivacy.onion",
	"monero.stackwallet.com:18081/mainnet/stackwallet.com",
	"xmr.stormycloud.org:18089/mainnet/stormycloud.org",
	"monero.10z.com.ar:18089/mainnet/10z.com.ar",
	"node.xmr.rocks:18089/mainnet/xmr.rocks",
	"xqnnz2xmlmtpy2p4cm4cphg2elkwu5oob7b7so5v4wwgt44p6vbx5ryd.onion/mainnet/xmr.rocks.onion",
	"opennode.xmr-tw.org:18089/mainnet/xmr-tw.org",
}

// Defaults parses DefaultNodes.
func Defaults() []Descriptor {
	out := make([]Descriptor, 0, len(DefaultNodes))
	for _, s := range DefaultNodes {
		out = append(out, MustParse(s))
	}
	return out
}

// Find returns the default node whose name matches, case sensitively.
func Find(name string) (Descriptor, bool) {
	for _, d := range Defaults() {
		if d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}
