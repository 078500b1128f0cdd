/*
Auction contract is a single sealed-progress sale of one item. Bidders lock
GAS in the contract while the sale is open; cumulative per-bidder totals stay
readable only through viewing keys, while the current highest total is public.
After the end block has passed, losing bidders retract their funds and the
admin claims the winning bid.

A sale is open up to and including its end block. Bids are cumulative: each
Bid (or direct GAS transfer to the contract) adds to the sender's total, and
the leader changes only when another bidder's total becomes strictly larger,
so ties keep the earlier leader. The very first bid becomes the leader
regardless of amount. Bid ledger entries are never deleted, they are zeroed
exactly once when the funds leave the contract.

The contract carries a killswitch: the admin can pause it (all state-changing
methods fail until unpaused) or mark it as migrating to a new address, which
is irreversible. Update remains available in both states.

# Contract notifications

Bid notification. Emitted on every accepted bid:

	Bid:
	  - name: bidder
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: total
	    type: Integer

BidRetracted notification. Emitted when a losing bidder withdraws funds:

	BidRetracted:
	  - name: bidder
	    type: Hash160
	  - name: amount
	    type: Integer

ProceedsClaimed notification. Emitted when the admin collects the winning bid:

	ProceedsClaimed:
	  - name: winner
	    type: Hash160
	  - name: admin
	    type: Hash160
	  - name: amount
	    type: Integer

StatusChanged notification. Emitted on every killswitch transition:

	StatusChanged:
	  - name: state
	    type: Integer

AdminChanged notification. Emitted when the administrative role moves:

	AdminChanged:
	  - name: admin
	    type: Hash160
*/
package auction
