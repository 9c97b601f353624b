package main

const (
	homeFlag      = "home"
	forceFlag     = "force"
	rpcAddrFlag   = "rpc-addr"
	percentFlag   = "percent"
	keyFlag       = "key"
	listenFlag    = "listen-addr"
	waitFlag      = "wait"
	chainNameFlag = "chain"

	defaultChainName = "parachain-staking"
)
