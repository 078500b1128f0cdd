/*
Factory contract launches auction contracts from a stored template and keeps
a registry of every launch. The template (NEF and manifest of the auction
contract) is fixed at deployment together with its sha256 checksum, so every
registry entry records which code the auction runs.

Launching is a two-step protocol contained in one transaction: CreateAuction
appends a placeholder entry to the registry and deploys the template, and the
new contract immediately reports its address back via OnAuctionDeployed,
which resolves that entry. A template that does not report back, a reply with
a wrong tag, or a reply from anybody but the freshly deployed contract aborts
the whole call, so the registry never holds dangling or spoofed records.

# Contract notifications

AuctionCreated notification. Emitted when a new sale is registered:

	AuctionCreated:
	  - name: index
	    type: Integer
	  - name: name
	    type: String
	  - name: endBlock
	    type: Integer

AuctionDeployed notification. Emitted when the registry entry is resolved:

	AuctionDeployed:
	  - name: index
	    type: Integer
	  - name: auction
	    type: Hash160

AdminChanged notification. Emitted when the administrative role moves:

	AdminChanged:
	  - name: admin
	    type: Hash160
*/
package factory
